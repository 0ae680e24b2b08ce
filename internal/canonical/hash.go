package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep fingerprints of different record kinds apart.
// The version suffix leaves room for changing the projection later.
const (
	DomainScore = "tennis/score/v1"
	DomainMatch = "tennis/match/v1"
	DomainTrace = "tennis/trace/v1"
)

// Fingerprint hashes the canonical form of v under domain.
// Format: hex(SHA256(domain + 0x00 + canonical(v))).
func Fingerprint(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", domain, err)
	}

	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only when v is known to be canonical-safe.
func MustFingerprint(domain string, v any) string {
	fp, err := Fingerprint(domain, v)
	if err != nil {
		panic(err)
	}
	return fp
}
