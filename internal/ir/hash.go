package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainSource prefixes source-content hashes. The version suffix enables
// future algorithm migration without ambiguous keys.
const DomainSource = "bridgen/source/v1"

// SourceHash computes the content-addressed identity of one source file:
// SHA-256 over the domain prefix, a null separator, and the raw bytes. The
// null byte prevents domain/data boundary ambiguity. The hash is stable
// across runs given identical input and keys the extraction cache.
func SourceHash(source []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainSource))
	h.Write([]byte{0x00})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
