// Package rsalab implements the textbook RSA key-generation and
// modular-exponentiation engine used in the cryptography lab series.
// It provides the Extended Euclidean Algorithm for modular inverses,
// Square-and-Multiply fast modular exponentiation, RSA keypair
// construction with primality and coprimality validation, and a
// block-based text codec over the A-Z alphabet.
//
// WARNING: this is a teaching implementation. It deliberately omits
// cryptographically secure random number generation in the key path,
// real-world key sizes, padding schemes (OAEP/PKCS#1) and timing-attack
// resistance. DO NOT use it to protect real data.
package rsalab

// Version of the RSA lab Go implementation.
const Version = "1.0.0"

// API summary:
//
// Modular arithmetic kernel:
//   - modmath.GCD(a, b) - Euclidean greatest common divisor
//   - modmath.ExtendedGCD(a, b) - Bezout coefficients with a*x + b*y = g
//   - modmath.ModularInverse(a, m) - inverse of a modulo m
//   - modmath.ModPow(base, exp, mod) - square-and-multiply exponentiation
//
// Key generation:
//   - keygen.GenerateKeys(p, q, e) - validated keypair from two primes
//   - keygen.GeneratePrime(r, bits) - random prime helper (non-crypto source)
//
// Block codec:
//   - codec.EncryptMessage(plaintext, e, n) - A-Z text to cipher blocks
//   - codec.DecryptMessage(blocks, d, n) - cipher blocks back to text
//
// Validation:
//   - core.IsProbablyPrime(n) - primality check for lab-sized integers
//   - core.ValidateKeyParameters(p, q, e) - RSA structural preconditions
