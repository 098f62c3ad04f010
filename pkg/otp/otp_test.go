package otp

import "testing"

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate returned %v", err)
		}
		if len(code) != Length {
			t.Fatalf("code %q has length %d, want %d", code, len(code), Length)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit %q", code, c)
			}
		}
		seen[code] = true
	}

	// 200 draws from a million-value space colliding down to a handful
	// would mean the generator is broken
	if len(seen) < 100 {
		t.Fatalf("only %d distinct codes in 200 draws", len(seen))
	}
}
