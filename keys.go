package rsalab

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptoteach/rsa-lab-go/utils"
)

// fingerprintDomain separates key fingerprints from any other SHAKE use.
const fingerprintDomain = "rsa-lab-key-fpr-v1"

// FingerprintSize is the fingerprint length in bytes.
const FingerprintSize = 8

// ErrMalformedKey reports key bytes that cannot be decoded.
var ErrMalformedKey = errors.New("malformed key encoding")

// MarshalPublicKey encodes a public key as two length-prefixed
// big-endian integers (e, then n). Each length prefix is 4 bytes,
// little-endian.
func MarshalPublicKey(pk PublicKey) []byte {
	return appendInt(appendInt(nil, pk.E), pk.N)
}

// UnmarshalPublicKey decodes the MarshalPublicKey encoding.
func UnmarshalPublicKey(data []byte) (PublicKey, error) {
	e, rest, err := readInt(data)
	if err != nil {
		return PublicKey{}, fmt.Errorf("public key exponent: %w", err)
	}
	n, rest, err := readInt(rest)
	if err != nil {
		return PublicKey{}, fmt.Errorf("public key modulus: %w", err)
	}
	if len(rest) != 0 {
		return PublicKey{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedKey, len(rest))
	}
	return PublicKey{E: e, N: n}, nil
}

// MarshalPrivateKey encodes a private key as two length-prefixed
// big-endian integers (d, then n).
func MarshalPrivateKey(pk PrivateKey) []byte {
	return appendInt(appendInt(nil, pk.D), pk.N)
}

// UnmarshalPrivateKey decodes the MarshalPrivateKey encoding.
func UnmarshalPrivateKey(data []byte) (PrivateKey, error) {
	d, rest, err := readInt(data)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("private key exponent: %w", err)
	}
	n, rest, err := readInt(rest)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("private key modulus: %w", err)
	}
	if len(rest) != 0 {
		return PrivateKey{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedKey, len(rest))
	}
	return PrivateKey{D: d, N: n}, nil
}

// Fingerprint returns a short hex identifier for a public key, derived
// with domain-separated SHAKE256 over the marshaled key.
func Fingerprint(pk PublicKey) string {
	digest := utils.Shake256WithDomain(fingerprintDomain, MarshalPublicKey(pk), FingerprintSize)
	return hex.EncodeToString(digest)
}

func appendInt(buf []byte, v *big.Int) []byte {
	var body []byte
	if v != nil {
		body = v.Bytes()
	}
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(body)))
	buf = append(buf, lenBuf...)
	return append(buf, body...)
}

func readInt(data []byte) (*big.Int, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated length prefix", ErrMalformedKey)
	}
	l := int(binary.LittleEndian.Uint32(data))
	data = data[4:]
	if l > len(data) {
		return nil, nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrMalformedKey, l, len(data))
	}
	return new(big.Int).SetBytes(data[:l]), data[l:], nil
}
