// Package utils provides hashing helpers shared by the lab tooling.
package utils

import "golang.org/x/crypto/sha3"

// SHA3256 computes the SHA3-256 hash of the input and returns the
// 32-byte digest.
func SHA3256(input []byte) []byte {
	h := sha3.New256()
	h.Write(input)
	return h.Sum(nil)
}

// Shake256WithDomain computes a domain-separated SHAKE256 digest of
// the requested length. The domain string is length-prefixed so
// different uses of the function cannot collide. Panics if domain is
// longer than 255 bytes.
func Shake256WithDomain(domain string, data []byte, outputLen int) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}

	h := sha3.NewShake256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	output := make([]byte, outputLen)
	_, _ = h.Read(output)
	return output
}
