package idgen

import (
	"errors"
	"strings"
	"testing"
)

func TestEncoderRoundTrip(t *testing.T) {
	enc, err := NewEncoder("", "shop", 8)
	if err != nil {
		t.Fatalf("NewEncoder error: %v", err)
	}
	seen := make(map[string]struct{})
	for _, id := range []uint{1, 2, 42, 1000, 987654} {
		number, err := enc.Encode(id)
		if err != nil {
			t.Fatalf("Encode(%d) error: %v", id, err)
		}
		if len(number) < 8 {
			t.Fatalf("Encode(%d) = %q, shorter than min length", id, number)
		}
		if _, dup := seen[number]; dup {
			t.Fatalf("duplicate number %q", number)
		}
		seen[number] = struct{}{}

		decoded, err := enc.Decode(number)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", number, err)
		}
		if decoded != id {
			t.Fatalf("Decode(%q) = %d, want %d", number, decoded, id)
		}
	}
}

func TestEncoderSeedChangesOutput(t *testing.T) {
	a, _ := NewEncoder("", "seed-a", 8)
	b, _ := NewEncoder("", "seed-b", 8)
	na, _ := a.Encode(7)
	nb, _ := b.Encode(7)
	if na == nb {
		t.Fatalf("different seeds produced the same number %q", na)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	enc, _ := NewEncoder("", "shop", 8)
	for _, raw := range []string{"", "   ", "not-a-number!"} {
		if _, err := enc.Decode(raw); !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("Decode(%q) error = %v, want ErrInvalidNumber", raw, err)
		}
	}
	if _, err := enc.Encode(0); err == nil {
		t.Fatal("Encode(0) should fail")
	}
}

func TestEncoderLowercaseAlphabet(t *testing.T) {
	enc, err := NewEncoder("abcdefghjkmnpqrstuvwxyz23456789", "", 6)
	if err != nil {
		t.Fatalf("NewEncoder error: %v", err)
	}
	number, err := enc.Encode(15)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if number != strings.ToUpper(number) {
		t.Fatalf("expected upper-case number, got %q", number)
	}
	for _, candidate := range []string{number, strings.ToLower(number)} {
		id, err := enc.Decode(candidate)
		if err != nil || id != 15 {
			t.Fatalf("Decode(%q) = %d, %v", candidate, id, err)
		}
	}

	if _, err := NewEncoder("abcABCdefghjkmnpq", "", 6); err == nil {
		t.Fatal("expected error for alphabet with case-folded duplicates")
	}
}
