// Package canonical serialises score projections and traces as RFC 8785
// canonical JSON and derives content-addressed fingerprints from them.
//
// Canonical output is byte-stable: object keys are ordered by UTF-16 code
// units, strings are NFC normalised, HTML characters are not escaped, and
// there is no insignificant whitespace. Floats and nulls are rejected.
//
// Golden trace files and replay verification both depend on this stability,
// so nothing else in the module should hand-roll JSON for those purposes.
package canonical
