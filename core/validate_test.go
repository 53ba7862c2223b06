package core

import (
	"errors"
	"math/big"
	"testing"
)

func TestIsProbablyPrimeSmall(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{6, false},
		{17, true},
		{53, true},
		{61, true},
		{561, false},  // Carmichael number
		{1105, false}, // Carmichael number
		{7919, true},
		{1048573, true}, // prime just below the trial division bound
	}

	for _, tt := range tests {
		if got := IsProbablyPrime(big.NewInt(tt.n)); got != tt.want {
			t.Errorf("IsProbablyPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestIsProbablyPrimeLarge(t *testing.T) {
	// Above the trial division bound the deterministic Miller-Rabin
	// path takes over.
	tests := []struct {
		n    string
		want bool
	}{
		{"2147483647", true},  // 2^31 - 1, Mersenne prime
		{"1000000007", true},
		{"1000000009", true},
		{"1000000016000000063", false}, // 1000000007 * 1000000009
		{"2305843009213693951", true},  // 2^61 - 1, Mersenne prime
		{"2305843009213693953", false},
	}

	for _, tt := range tests {
		n, ok := new(big.Int).SetString(tt.n, 10)
		if !ok {
			t.Fatalf("bad test integer %q", tt.n)
		}
		if got := IsProbablyPrime(n); got != tt.want {
			t.Errorf("IsProbablyPrime(%s) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestValidateKeyParameters(t *testing.T) {
	tests := []struct {
		name    string
		p, q, e int64
		wantErr error
	}{
		{"classic key", 61, 53, 17, nil},
		{"p not prime", 4, 53, 3, ErrNotPrime},
		{"q not prime", 61, 6, 3, ErrNotPrime},
		{"both composite", 4, 6, 3, ErrNotPrime},
		{"p equals q", 53, 53, 17, ErrPEqualsQ},
		{"e is one", 61, 53, 1, ErrExponentOutOfRange},
		{"e is zero", 61, 53, 0, ErrExponentOutOfRange},
		{"e equals phi", 61, 53, 3120, ErrExponentOutOfRange},
		{"e above phi", 61, 53, 5000, ErrExponentOutOfRange},
		{"e shares factor with phi", 61, 53, 6, ErrExponentNotCoprime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyParameters(big.NewInt(tt.p), big.NewInt(tt.q), big.NewInt(tt.e))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateKeyParameters(%d, %d, %d) = %v, want nil",
						tt.p, tt.q, tt.e, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKeyParameters(%d, %d, %d) = %v, want %v",
					tt.p, tt.q, tt.e, err, tt.wantErr)
			}
		})
	}
}

func TestTotient(t *testing.T) {
	phi := Totient(big.NewInt(61), big.NewInt(53))
	if phi.Int64() != 3120 {
		t.Errorf("Totient(61, 53) = %v, want 3120", phi)
	}
}
