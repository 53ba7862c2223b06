// Package test contains end-to-end integration tests that exercise the
// library the way the CLI and the lab exercises do.
package test

import (
	"math/big"
	mrand "math/rand"
	"testing"

	rsalab "github.com/cryptoteach/rsa-lab-go"
	"github.com/cryptoteach/rsa-lab-go/codec"
	"github.com/cryptoteach/rsa-lab-go/core"
	"github.com/cryptoteach/rsa-lab-go/keygen"
	"github.com/cryptoteach/rsa-lab-go/modmath"
)

// TestClassicScenario walks the full textbook example: the p=61, q=53,
// e=17 keypair, the "ATTACK" message and its known cipher blocks.
func TestClassicScenario(t *testing.T) {
	kp, err := keygen.GenerateKeys(big.NewInt(61), big.NewInt(53), big.NewInt(17))
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}
	if kp.Public.N.Int64() != 3233 {
		t.Fatalf("n = %v, want 3233", kp.Public.N)
	}
	if kp.Private.D.Int64() != 2753 {
		t.Fatalf("d = %v, want 2753", kp.Private.D)
	}

	blocks, err := codec.EncryptMessage("ATTACK", kp.Public.E, kp.Public.N)
	if err != nil {
		t.Fatalf("EncryptMessage failed: %v", err)
	}
	want := []int64{615, 3081, 2502}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i, w := range want {
		if blocks[i].Int64() != w {
			t.Errorf("block %d = %v, want %d", i, blocks[i], w)
		}
	}

	plaintext, err := codec.DecryptMessage(blocks, kp.Private.D, kp.Private.N)
	if err != nil {
		t.Fatalf("DecryptMessage failed: %v", err)
	}
	if plaintext != "ATTACK" {
		t.Errorf("plaintext = %q, want %q", plaintext, "ATTACK")
	}
}

// TestKeyConsistency checks the arithmetic relations every generated
// keypair must satisfy.
func TestKeyConsistency(t *testing.T) {
	p, q, e := big.NewInt(7919), big.NewInt(7907), big.NewInt(65537)
	kp, err := keygen.GenerateKeys(p, q, e)
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}

	n := new(big.Int).Mul(p, q)
	if kp.Public.N.Cmp(n) != 0 {
		t.Errorf("n = %v, want %v", kp.Public.N, n)
	}

	phi := core.Totient(p, q)
	ed := new(big.Int).Mul(kp.Public.E, kp.Private.D)
	ed.Mod(ed, phi)
	if ed.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("(e*d) mod phi = %v, want 1", ed)
	}

	// Encrypt-then-decrypt must be the identity on every residue we try.
	for _, m := range []int64{0, 1, 2, 25, 675, 12345} {
		c, err := modmath.ModPow(big.NewInt(m), kp.Public.E, kp.Public.N)
		if err != nil {
			t.Fatalf("ModPow(m=%d) failed: %v", m, err)
		}
		back, err := modmath.ModPow(c, kp.Private.D, kp.Private.N)
		if err != nil {
			t.Fatalf("ModPow(c) failed: %v", err)
		}
		if back.Int64() != m {
			t.Errorf("m = %d: round trip gave %v", m, back)
		}
	}
}

func TestKeySerializationRoundTrip(t *testing.T) {
	kp, err := keygen.GenerateKeys(big.NewInt(61), big.NewInt(53), big.NewInt(17))
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}

	pub, err := rsalab.UnmarshalPublicKey(rsalab.MarshalPublicKey(kp.Public))
	if err != nil {
		t.Fatalf("public key round trip failed: %v", err)
	}
	if pub.E.Cmp(kp.Public.E) != 0 || pub.N.Cmp(kp.Public.N) != 0 {
		t.Error("public key changed across marshal round trip")
	}

	priv, err := rsalab.UnmarshalPrivateKey(rsalab.MarshalPrivateKey(kp.Private))
	if err != nil {
		t.Fatalf("private key round trip failed: %v", err)
	}
	if priv.D.Cmp(kp.Private.D) != 0 || priv.N.Cmp(kp.Private.N) != 0 {
		t.Error("private key changed across marshal round trip")
	}

	if rsalab.Fingerprint(pub) != rsalab.Fingerprint(kp.Public) {
		t.Error("fingerprint changed across marshal round trip")
	}
}

// TestGeneratedPrimesEndToEnd drives the whole pipeline with random
// primes: generate, validate, build a keypair and push a message
// through the block codec.
func TestGeneratedPrimesEndToEnd(t *testing.T) {
	r := mrand.New(mrand.NewSource(42))
	e := big.NewInt(65537)

	for i := 0; i < 5; i++ {
		p, err := keygen.GeneratePrime(r, 20)
		if err != nil {
			t.Fatalf("iteration %d: GeneratePrime failed: %v", i, err)
		}
		q, err := keygen.GeneratePrime(r, 20)
		if err != nil {
			t.Fatalf("iteration %d: GeneratePrime failed: %v", i, err)
		}
		if p.Cmp(q) == 0 {
			continue
		}

		kp, err := keygen.GenerateKeys(p, q, e)
		if err != nil {
			t.Fatalf("iteration %d: GenerateKeys(p=%v, q=%v) failed: %v", i, p, q, err)
		}

		message := "THEQUICKBROWNFOX"
		blocks, err := codec.EncryptMessage(message, kp.Public.E, kp.Public.N)
		if err != nil {
			t.Fatalf("iteration %d: EncryptMessage failed: %v", i, err)
		}
		plaintext, err := codec.DecryptMessage(blocks, kp.Private.D, kp.Private.N)
		if err != nil {
			t.Fatalf("iteration %d: DecryptMessage failed: %v", i, err)
		}

		// The codec pads short final groups, so compare prefixes.
		if len(plaintext) < len(message) || plaintext[:len(message)] != message {
			t.Errorf("iteration %d: round trip = %q, want prefix %q", i, plaintext, message)
		}
		for j := len(message); j < len(plaintext); j++ {
			if plaintext[j] != codec.PadSymbol {
				t.Errorf("iteration %d: tail byte %d = %q, want pad", i, j, plaintext[j])
			}
		}
	}
}

// TestTraceObserverEndToEnd checks that tracing reports the same
// result the untraced path computes and never mutates it.
func TestTraceObserverEndToEnd(t *testing.T) {
	var steps []rsalab.TraceStep
	traced, err := modmath.ModPowTrace(big.NewInt(19), big.NewInt(17), big.NewInt(3233),
		func(s rsalab.TraceStep) { steps = append(steps, s) })
	if err != nil {
		t.Fatalf("ModPowTrace failed: %v", err)
	}
	plain, err := modmath.ModPow(big.NewInt(19), big.NewInt(17), big.NewInt(3233))
	if err != nil {
		t.Fatalf("ModPow failed: %v", err)
	}
	if traced.Cmp(plain) != 0 {
		t.Errorf("traced result %v != untraced result %v", traced, plain)
	}
	if len(steps) == 0 {
		t.Fatal("no trace steps recorded")
	}
	last := steps[len(steps)-1]
	if last.Op != rsalab.TraceMultiply || last.Value.Int64() != 615 {
		t.Errorf("final step = %s %v, want multiply 615", last.Op, last.Value)
	}
}
