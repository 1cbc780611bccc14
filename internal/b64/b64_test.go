package b64

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(47))
	for n := 0; n <= 300; n++ {
		in := make([]byte, n)
		rng.Read(in)
		got, err := Decode(Encode(in))
		if err != nil {
			t.Fatalf("len %d: decode: %v", n, err)
		}
		if !bytes.Equal(got, in) {
			t.Fatalf("len %d: round trip mismatch", n)
		}
	}
}

func TestDecodeStopsAtInvalidByte(t *testing.T) {
	t.Parallel()

	got, err := Decode("aGVsbG8=trailing")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q want %q", got, "hello")
	}

	got, err = Decode("aGk\x00garbage")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("got %q want %q", got, "hi")
	}
}

func TestDecodeDropsDanglingGroup(t *testing.T) {
	t.Parallel()

	got, err := Decode("aGk=Q")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("got %q want %q", got, "hi")
	}
	got, err = Decode("aGlzQ")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "his" {
		t.Fatalf("got %q want %q", got, "his")
	}
	if got, err := Decode(""); err != nil || len(got) != 0 {
		t.Fatalf("empty: got %q err=%v", got, err)
	}
}
