package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthUniq(t *testing.T) {
	t.Parallel()
	a, err := RandBytes(32)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("len=%d, want=32", len(a))
	}
	b, _ := RandBytes(32)
	if bytes.Equal(a, b) {
		t.Fatalf("RandBytes produced equal slices")
	}
}

func TestNewSessionID(t *testing.T) {
	t.Parallel()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := NewSessionID()
		if err != nil {
			t.Fatalf("NewSessionID: %v", err)
		}
		if !ValidSessionID(id) {
			t.Fatalf("generated id %q is not valid", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidSessionID_Rejects(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"", "short", "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"} {
		if ValidSessionID(id) {
			t.Fatalf("ValidSessionID(%q) = true", id)
		}
	}
}
