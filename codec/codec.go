// Package codec maps A-Z plaintext to numeric blocks and back,
// applying textbook RSA to each block independently. Blocks are
// positional radix-26 encodings of fixed-size symbol groups; there is
// no chaining mode and no padding scheme beyond the documented
// handling of a short final group.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	rsalab "github.com/cryptoteach/rsa-lab-go"
	"github.com/cryptoteach/rsa-lab-go/modmath"
)

// Alphabet is the supported symbol set. A maps to 0, Z to 25.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Radix is the positional base used to encode symbol groups.
const Radix = len(Alphabet)

// PadSymbol fills the final group when the plaintext length is not a
// multiple of the block size, following the classical-cipher
// convention. The padding survives decryption: callers that need exact
// round-trips keep the message length a multiple of BlockSize(n).
const PadSymbol = 'X'

// ErrModulusTooSmall reports a modulus that cannot represent even a
// single-symbol block (n <= 25).
var ErrModulusTooSmall = errors.New("modulus too small for a single-symbol block")

// InvalidSymbolError reports a plaintext character outside the A-Z
// alphabet, with its zero-based position.
type InvalidSymbolError struct {
	Symbol   rune
	Position int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at position %d: alphabet is A-Z", e.Symbol, e.Position)
}

// BlockOutOfRangeError reports a ciphertext block outside [0, n)
// during decryption. Such a block cannot have been produced by a valid
// encryption under the same modulus.
type BlockOutOfRangeError struct {
	Index int
	Block *big.Int
}

func (e *BlockOutOfRangeError) Error() string {
	return fmt.Sprintf("cipher block %d = %v out of range [0, n)", e.Index, e.Block)
}

var bigRadix = big.NewInt(int64(Radix))

// BlockSize returns the number of symbols per block for modulus n: the
// largest k such that the maximum group value 26^k - 1 is strictly
// below n. It returns ErrModulusTooSmall when not even one symbol fits.
func BlockSize(n *big.Int) (int, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, fmt.Errorf("%w: modulus must be positive", modmath.ErrInvalidInput)
	}

	k := 0
	limit := big.NewInt(1)
	for {
		limit.Mul(limit, bigRadix)
		if limit.Cmp(n) > 0 {
			break
		}
		k++
	}
	if k == 0 {
		return 0, fmt.Errorf("%w: n = %v", ErrModulusTooSmall, n)
	}
	return k, nil
}

// Normalize upper-cases the plaintext and verifies every symbol is in
// the alphabet. The first offending character is reported with its
// position.
func Normalize(plaintext string) (string, error) {
	var b strings.Builder
	b.Grow(len(plaintext))
	for i, r := range []rune(plaintext) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		default:
			return "", &InvalidSymbolError{Symbol: r, Position: i}
		}
	}
	return b.String(), nil
}

// EncryptMessage encrypts an A-Z plaintext under the public key (e, n)
// and returns the ordered cipher blocks. An empty plaintext yields an
// empty block sequence. Blocks are independent; order is significant.
func EncryptMessage(plaintext string, e, n *big.Int) ([]*big.Int, error) {
	return EncryptMessageTrace(plaintext, e, n, nil)
}

// EncryptMessageTrace is EncryptMessage with an optional trace sink
// forwarded to every per-block exponentiation.
func EncryptMessageTrace(plaintext string, e, n *big.Int, trace rsalab.TraceFunc) ([]*big.Int, error) {
	normalized, err := Normalize(plaintext)
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		return nil, nil
	}

	k, err := BlockSize(n)
	if err != nil {
		return nil, err
	}

	if rem := len(normalized) % k; rem != 0 {
		normalized += strings.Repeat(string(rune(PadSymbol)), k-rem)
	}

	var blocks []*big.Int
	for i := 0; i < len(normalized); i += k {
		m := encodeGroup(normalized[i : i+k])
		c, err := modmath.ModPowTrace(m, e, n, trace)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, c)
	}
	return blocks, nil
}

// DecryptMessage decrypts cipher blocks under the private key (d, n)
// and returns the recovered plaintext. Every block must lie in [0, n).
// An empty block sequence yields an empty string.
//
// Every block decodes to exactly BlockSize(n) symbols; PadSymbol
// characters appended by EncryptMessage to fill a short final group
// are returned as-is.
func DecryptMessage(blocks []*big.Int, d, n *big.Int) (string, error) {
	return DecryptMessageTrace(blocks, d, n, nil)
}

// DecryptMessageTrace is DecryptMessage with an optional trace sink
// forwarded to every per-block exponentiation.
func DecryptMessageTrace(blocks []*big.Int, d, n *big.Int, trace rsalab.TraceFunc) (string, error) {
	if len(blocks) == 0 {
		return "", nil
	}

	k, err := BlockSize(n)
	if err != nil {
		return "", err
	}

	for i, c := range blocks {
		if c == nil || c.Sign() < 0 || c.Cmp(n) >= 0 {
			return "", &BlockOutOfRangeError{Index: i, Block: c}
		}
	}

	var b strings.Builder
	for _, c := range blocks {
		m, err := modmath.ModPowTrace(c, d, n, trace)
		if err != nil {
			return "", err
		}
		b.WriteString(decodeGroup(m, k))
	}
	return b.String(), nil
}

// encodeGroup maps a symbol group to its radix-26 positional value.
// "AT" becomes 0*26 + 19 = 19.
func encodeGroup(group string) *big.Int {
	v := new(big.Int)
	for i := 0; i < len(group); i++ {
		v.Mul(v, bigRadix)
		v.Add(v, big.NewInt(int64(group[i]-'A')))
	}
	return v
}

// decodeGroup reverses encodeGroup, left-padding with 'A' (digit
// zero) to exactly width symbols.
func decodeGroup(v *big.Int, width int) string {
	digits := make([]byte, 0, width)
	rem := new(big.Int)
	x := new(big.Int).Set(v)
	for x.Sign() > 0 {
		x.DivMod(x, bigRadix, rem)
		digits = append(digits, byte('A'+rem.Int64()))
	}
	for len(digits) < width {
		digits = append(digits, 'A')
	}

	// digits were produced least-significant first
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
