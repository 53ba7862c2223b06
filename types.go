package rsalab

import "math/big"

// PublicKey is the public half of an RSA keypair: the encryption
// exponent e and the modulus n = p*q.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is the private half of an RSA keypair: the decryption
// exponent d and the modulus n.
type PrivateKey struct {
	D *big.Int
	N *big.Int
}

// KeyPair holds both halves of an RSA keypair. It is immutable once
// generated: e*d = 1 (mod phi(n)) holds for the lifetime of the pair,
// so a KeyPair may be shared between goroutines without locking.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// =============================================================================
// Trace observer
// =============================================================================

// TraceOp identifies a single step of the square-and-multiply algorithm.
type TraceOp string

const (
	// TraceInit reports the accumulator before the first exponent bit.
	TraceInit TraceOp = "init"
	// TraceSquare reports the running base after a squaring step.
	TraceSquare TraceOp = "square"
	// TraceMultiply reports the accumulator after a multiply step.
	TraceMultiply TraceOp = "multiply"
)

// TraceStep is one observed step of a modular exponentiation. Bit is
// the index of the exponent bit being consumed, counted from the
// least-significant bit. Value is a copy owned by the receiver.
type TraceStep struct {
	Op    TraceOp
	Bit   int
	Value *big.Int
}

// TraceFunc receives exponentiation steps. A nil TraceFunc disables
// tracing. The kernel never retains the function between calls; there
// is no global verbose mode.
type TraceFunc func(TraceStep)
