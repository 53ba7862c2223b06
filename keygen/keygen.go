// Package keygen derives RSA keypairs from validated parameters.
package keygen

import (
	"errors"
	"math/big"
	mrand "math/rand"

	rsalab "github.com/cryptoteach/rsa-lab-go"
	"github.com/cryptoteach/rsa-lab-go/core"
	"github.com/cryptoteach/rsa-lab-go/modmath"
)

// GenerateKeys builds a keypair from two primes p, q and a public
// exponent e. It validates the parameters, computes n = p*q,
// phi = (p-1)(q-1) and d = e^-1 mod phi, and returns
// {public: (e, n), private: (d, n)}. Validator and kernel errors
// propagate unchanged; the caller must supply valid parameters.
//
// The same (p, q, e) always yields the same KeyPair: there is no
// randomness in this path.
func GenerateKeys(p, q, e *big.Int) (*rsalab.KeyPair, error) {
	if err := core.ValidateKeyParameters(p, q, e); err != nil {
		return nil, err
	}

	n := new(big.Int).Mul(p, q)
	phi := core.Totient(p, q)

	d, err := modmath.ModularInverse(e, phi)
	if err != nil {
		return nil, err
	}

	return &rsalab.KeyPair{
		Public: rsalab.PublicKey{
			E: new(big.Int).Set(e),
			N: n,
		},
		Private: rsalab.PrivateKey{
			D: d,
			N: new(big.Int).Set(n),
		},
	}, nil
}

// GeneratePrime returns a random prime of exactly the given bit
// length, drawn from the caller-supplied source r. The source is NOT
// cryptographically secure; this helper exists so the lab can produce
// fresh demonstration keys, nothing more. It sits outside the
// deterministic GenerateKeys contract.
func GeneratePrime(r *mrand.Rand, bits int) (*big.Int, error) {
	if r == nil {
		return nil, errors.New("keygen: random source must not be nil")
	}
	if bits < 2 {
		return nil, errors.New("keygen: prime must be at least 2 bits")
	}

	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))

	candidate := new(big.Int)
	buf := make([]byte, (bits+7)/8)
	for {
		r.Read(buf)
		candidate.SetBytes(buf)
		candidate.And(candidate, mask)
		// Force exact bit length and oddness before testing.
		candidate.SetBit(candidate, bits-1, 1)
		candidate.SetBit(candidate, 0, 1)
		if core.IsProbablyPrime(candidate) {
			return candidate, nil
		}
	}
}
