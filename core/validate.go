// Package core provides primality testing and RSA key parameter
// validation for the lab.
package core

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptoteach/rsa-lab-go/modmath"
)

var (
	// ErrNotPrime reports that p or q failed the primality check.
	ErrNotPrime = errors.New("value is not prime")
	// ErrPEqualsQ reports that the two primes are identical.
	ErrPEqualsQ = errors.New("p and q must be distinct")
	// ErrExponentOutOfRange reports e outside (1, phi(n)).
	ErrExponentOutOfRange = errors.New("public exponent out of range")
	// ErrExponentNotCoprime reports gcd(e, phi(n)) != 1.
	ErrExponentNotCoprime = errors.New("public exponent not coprime to phi(n)")
)

// trialDivisionBound is the cutoff below which IsProbablyPrime uses
// plain trial division, which is exact and fast enough for the small
// key sizes this lab targets.
const trialDivisionBound = 1 << 20

// millerRabinWitnesses is a fixed witness set that makes Miller-Rabin
// deterministic for every integer below 3.3 * 10^24, far beyond
// anything this lab generates. Using fixed witnesses keeps the
// validation path free of randomness.
var millerRabinWitnesses = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablyPrime reports whether n is prime. Below a small threshold
// it uses exact trial division; above it, deterministic Miller-Rabin.
// It is not hardened against adversarial inputs at production scale.
func IsProbablyPrime(n *big.Int) bool {
	if n == nil || n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(trialDivisionBound)) < 0 {
		return trialDivision(n.Int64())
	}
	return millerRabin(n)
}

func trialDivision(n int64) bool {
	if n%2 == 0 {
		return n == 2
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// millerRabin runs the Miller-Rabin test with the fixed witness set.
func millerRabin(n *big.Int) bool {
	if n.Bit(0) == 0 {
		return false
	}

	// n - 1 = 2^r * d with d odd.
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	x := new(big.Int)
	for _, w := range millerRabinWitnesses {
		a := big.NewInt(w)
		if a.Cmp(nMinus1) >= 0 {
			continue
		}
		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for i := 0; i < r-1; i++ {
			x.Exp(x, two, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// ValidateKeyParameters checks the RSA structural preconditions for
// (p, q, e): p and q prime and distinct, 1 < e < phi(n) and
// gcd(e, phi(n)) = 1 where phi(n) = (p-1)(q-1). It returns the first
// violated precondition.
func ValidateKeyParameters(p, q, e *big.Int) error {
	if !IsProbablyPrime(p) {
		return fmt.Errorf("p = %v: %w", p, ErrNotPrime)
	}
	if !IsProbablyPrime(q) {
		return fmt.Errorf("q = %v: %w", q, ErrNotPrime)
	}
	if p.Cmp(q) == 0 {
		return fmt.Errorf("p = q = %v: %w", p, ErrPEqualsQ)
	}

	phi := Totient(p, q)
	if e == nil || e.Cmp(one) <= 0 || e.Cmp(phi) >= 0 {
		return fmt.Errorf("e = %v, phi(n) = %v: %w", e, phi, ErrExponentOutOfRange)
	}

	g, err := modmath.GCD(e, phi)
	if err != nil {
		return err
	}
	if g.Cmp(one) != 0 {
		return fmt.Errorf("gcd(%v, %v) = %v: %w", e, phi, g, ErrExponentNotCoprime)
	}
	return nil
}

// Totient returns phi(n) = (p-1)(q-1) for distinct primes p and q.
func Totient(p, q *big.Int) *big.Int {
	p1 := new(big.Int).Sub(p, one)
	q1 := new(big.Int).Sub(q, one)
	return p1.Mul(p1, q1)
}
