package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix allows the encoding
// to change without colliding with old hashes.
const (
	DomainProgram = "cbc/program/v1"
	DomainTree    = "cbc/tree/v1"
)

// Digest computes SHA-256 over domain + 0x00 + data, hex encoded.
// The NUL separator keeps the domain/data boundary unambiguous.
func Digest(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content hash of p. Equal programs hash equally regardless
// of how they were produced.
func Hash(p *Program) (string, error) {
	canonical, err := MarshalCanonical(p.Value())
	if err != nil {
		return "", fmt.Errorf("Hash: failed to marshal: %w", err)
	}
	return Digest(DomainProgram, canonical), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when p is known to be well formed.
func MustHash(p *Program) string {
	h, err := Hash(p)
	if err != nil {
		panic(err)
	}
	return h
}
