package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	if a == b {
		t.Fatal("expected distinct ids")
	}
	parsed, err := googleuuid.Parse(a)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", a, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NewGroupID()) {
		t.Error("expected group id to be valid")
	}
	if IsValid("group-1") || IsValid("") {
		t.Error("expected garbage to be invalid")
	}
}
