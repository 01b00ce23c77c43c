package idgen

import (
	"strings"
	"testing"
)

func TestNewEventID(t *testing.T) {
	id, err := NewEventID()
	if err != nil {
		t.Fatalf("NewEventID: %v", err)
	}
	if !strings.HasPrefix(id, "evt-") {
		t.Errorf("id = %q, want evt- prefix", id)
	}
	if len(id) != len("evt-")+Length {
		t.Errorf("id length = %d", len(id))
	}
}

func TestNewRequestID(t *testing.T) {
	id, err := NewRequestID()
	if err != nil {
		t.Fatalf("NewRequestID: %v", err)
	}
	if !strings.HasPrefix(id, "req-") {
		t.Errorf("id = %q, want req- prefix", id)
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewEventID()
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
