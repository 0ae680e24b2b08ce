// Package handle exposes matches through opaque integer handles.
//
// A Handle is a token issued by a Table. The zero Handle is never issued
// and stands for "no match": every function accepts it and answers with a
// failure or a zero value instead of panicking. Handles that have been
// freed behave the same way.
//
// Boolean results and the flat Score struct mirror the C ABI exported by
// cmd/libtennis, so that layer is a thin conversion over this package.
//
// CONCURRENCY
//
// A Table serializes every call with one mutex, which makes it safe to use
// from several goroutines. Callers still own the ordering of points within
// a single match.
package handle
