// Package modmath provides the modular arithmetic kernel for the RSA
// lab: gcd, extended gcd, modular inverses and square-and-multiply
// exponentiation over arbitrary-precision integers. All functions are
// deterministic, side-effect-free and leave their arguments unmodified.
package modmath

import (
	"errors"
	"fmt"
	"math/big"

	rsalab "github.com/cryptoteach/rsa-lab-go"
)

var (
	// ErrInvalidInput reports a malformed numeric argument: a negative
	// value where a non-negative one is required, a non-positive
	// modulus, or gcd of two zeros.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoInverse reports that a modular inverse does not exist
	// because gcd(a, m) != 1.
	ErrNoInverse = errors.New("no modular inverse exists")
)

var one = big.NewInt(1)

// GCD computes the greatest common divisor of two non-negative
// integers using the Euclidean algorithm. gcd(0, 0) is undefined and
// returns ErrInvalidInput, as do negative inputs.
func GCD(a, b *big.Int) (*big.Int, error) {
	if a == nil || b == nil || a.Sign() < 0 || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: gcd requires non-negative arguments", ErrInvalidInput)
	}
	if a.Sign() == 0 && b.Sign() == 0 {
		return nil, fmt.Errorf("%w: gcd(0, 0) is undefined", ErrInvalidInput)
	}

	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x, y = y, x.Mod(x, y)
	}
	return x, nil
}

// ExtendedGCD computes g = gcd(a, b) together with Bezout coefficients
// x and y such that a*x + b*y = g. The coefficients may be negative.
// Inputs follow the same rules as GCD.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int, err error) {
	if a == nil || b == nil || a.Sign() < 0 || b.Sign() < 0 {
		return nil, nil, nil, fmt.Errorf("%w: extended gcd requires non-negative arguments", ErrInvalidInput)
	}
	if a.Sign() == 0 && b.Sign() == 0 {
		return nil, nil, nil, fmt.Errorf("%w: gcd(0, 0) is undefined", ErrInvalidInput)
	}

	// Iterative form of the recursion used in the lab notes:
	// maintain r-, s- and t-sequences until the remainder hits zero.
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Div(oldR, r)

		tmp.Mul(q, r)
		oldR.Sub(oldR, tmp)
		oldR, r = r, oldR

		tmp.Mul(q, s)
		oldS.Sub(oldS, tmp)
		oldS, s = s, oldS

		tmp.Mul(q, t)
		oldT.Sub(oldT, tmp)
		oldT, t = t, oldT
	}
	return oldR, oldS, oldT, nil
}

// ModularInverse computes d in [0, m) with a*d = 1 (mod m). It returns
// ErrNoInverse when gcd(a, m) != 1 and ErrInvalidInput when m <= 0 or
// a < 0.
func ModularInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidInput)
	}
	if a == nil || a.Sign() < 0 {
		return nil, fmt.Errorf("%w: inverse requires a non-negative argument", ErrInvalidInput)
	}

	g, x, _, err := ExtendedGCD(new(big.Int).Mod(a, m), m)
	if err != nil {
		return nil, err
	}
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrNoInverse, a, m, g)
	}

	d := x.Mod(x, m)
	if d.Sign() < 0 {
		d.Add(d, m)
	}
	return d, nil
}

// ModPow computes base^exp mod modulus with the square-and-multiply
// algorithm, consuming the exponent bits from the least-significant
// bit upward. exp = 0 yields 1 and modulus = 1 yields 0. Negative base
// or exponent and modulus <= 0 return ErrInvalidInput.
func ModPow(base, exp, modulus *big.Int) (*big.Int, error) {
	return ModPowTrace(base, exp, modulus, nil)
}

// ModPowTrace is ModPow with an optional trace sink. The sink is
// invoked once per multiply and per squaring step; pass nil to disable
// tracing.
func ModPowTrace(base, exp, modulus *big.Int, trace rsalab.TraceFunc) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidInput)
	}
	if base == nil || exp == nil || base.Sign() < 0 || exp.Sign() < 0 {
		return nil, fmt.Errorf("%w: base and exponent must be non-negative", ErrInvalidInput)
	}
	if modulus.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	e := new(big.Int).Set(exp)

	if trace != nil {
		trace(rsalab.TraceStep{Op: rsalab.TraceInit, Bit: 0, Value: new(big.Int).Set(result)})
	}

	bit := 0
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
			if trace != nil {
				trace(rsalab.TraceStep{Op: rsalab.TraceMultiply, Bit: bit, Value: new(big.Int).Set(result)})
			}
		}
		e.Rsh(e, 1)
		if e.Sign() > 0 {
			b.Mul(b, b)
			b.Mod(b, modulus)
			if trace != nil {
				trace(rsalab.TraceStep{Op: rsalab.TraceSquare, Bit: bit, Value: new(big.Int).Set(b)})
			}
		}
		bit++
	}
	return result, nil
}
