package giftcard

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func neverExists(string) (bool, error) { return false, nil }

func TestCodeGenerator_CodeShape(t *testing.T) {
	g := NewCodeGenerator(rand.NewSource(1))

	code, err := g.Generate(neverExists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(code) != CodeLength {
		t.Fatalf("expected %d chars, got %q", CodeLength, code)
	}
	for _, r := range code {
		if !strings.ContainsRune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", r) {
			t.Fatalf("unexpected character %q in code %q", r, code)
		}
	}
}

func TestCodeGenerator_DeterministicWithSeed(t *testing.T) {
	a := NewCodeGenerator(rand.NewSource(42))
	b := NewCodeGenerator(rand.NewSource(42))

	codeA, _ := a.Generate(neverExists)
	codeB, _ := b.Generate(neverExists)

	if codeA != codeB {
		t.Fatalf("same seed must draw the same code: %q vs %q", codeA, codeB)
	}
}

func TestCodeGenerator_RetriesOnCollision(t *testing.T) {
	g := NewCodeGenerator(rand.NewSource(7))

	calls := 0
	code, err := g.Generate(func(string) (bool, error) {
		calls++
		return calls < 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 draws, got %d", calls)
	}
	if code == "" {
		t.Fatalf("expected a code after retries")
	}
}

func TestCodeGenerator_ExhaustsAfterTenAttempts(t *testing.T) {
	g := NewCodeGenerator(rand.NewSource(7))

	calls := 0
	_, err := g.Generate(func(string) (bool, error) {
		calls++
		return true, nil
	})

	if !errors.Is(err, ErrCodeExhausted) {
		t.Fatalf("expected ErrCodeExhausted, got %v", err)
	}
	if calls != 10 {
		t.Fatalf("expected exactly 10 attempts, got %d", calls)
	}
}

func TestCodeGenerator_PropagatesExistsError(t *testing.T) {
	g := NewCodeGenerator(rand.NewSource(7))

	boom := errors.New("db down")
	_, err := g.Generate(func(string) (bool, error) {
		return false, boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to surface, got %v", err)
	}
}
