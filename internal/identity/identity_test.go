package identity_test

import (
	"errors"
	"testing"

	"fwarchive/internal/identity"
)

func TestNormalizeIsIdempotent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DS-2CD1023G0-IUF", "ds-2cd1023g0-iuf"},
		{"  IPC  G0 ", "ipc_g0"},
		{"already_normal", "already_normal"},
		{"   ", ""},
	}
	for _, tc := range tests {
		once := identity.Normalize(tc.in)
		if once != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, once, tc.want)
		}
		if twice := identity.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", tc.in, once, twice)
		}
	}
}

func TestCanonicalKeyDeterminism(t *testing.T) {
	key1, err := identity.CanonicalKey("DS-2CD1023G0-IUF", "IPC_G0", "5.7.23")
	if err != nil {
		t.Fatalf("CanonicalKey failed: %v", err)
	}
	key2, err := identity.CanonicalKey("  DS-2CD1023G0-IUF ", " IPC_G0", "5.7.23 ")
	if err != nil {
		t.Fatalf("CanonicalKey failed: %v", err)
	}
	if key1 != key2 {
		t.Fatalf("keys differ under whitespace variation: %q vs %q", key1, key2)
	}
	if key1 != "ds-2cd1023g0-iuf_ipc_g0_5.7.23" {
		t.Fatalf("key = %q", key1)
	}
}

func TestCanonicalKeyUnknownHardwareSentinel(t *testing.T) {
	key, err := identity.CanonicalKey("DS-7608NI-K2", "", "4.1.0")
	if err != nil {
		t.Fatalf("CanonicalKey failed: %v", err)
	}
	if key != "ds-7608ni-k2_unknown_4.1.0" {
		t.Fatalf("key = %q", key)
	}
}

func TestCanonicalKeyEmptyModel(t *testing.T) {
	if _, err := identity.CanonicalKey("   ", "IPC_G0", "5.7.23"); !errors.Is(err, identity.ErrEmptyModel) {
		t.Fatalf("expected ErrEmptyModel, got %v", err)
	}
}

func TestRegistryAutoAssignment(t *testing.T) {
	r := identity.NewRegistry()

	id1, err := r.Resolve("DS-2CD1023G0E-I", "IPC_G0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id1 != identity.AutoIDFloor {
		t.Fatalf("first auto id = %d, want %d", id1, identity.AutoIDFloor)
	}

	id2, err := r.Resolve("DS-7608NI-K2", "NVR_K51")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id2 != id1+1 {
		t.Fatalf("second auto id = %d, want %d", id2, id1+1)
	}

	// Same pair, same id, regardless of input whitespace.
	again, err := r.Resolve("  ds-2cd1023g0e-i ", "ipc_g0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if again != id1 {
		t.Fatalf("Resolve not stable: %d then %d", id1, again)
	}
}

func TestRegistryDeclareConflict(t *testing.T) {
	r := identity.NewRegistry()
	if err := r.Declare("DS-2CD1023G0E-I", "IPC_G0", 42); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if err := r.Declare("DS-2CD1023G0E-I", "IPC_G0", 43); !errors.Is(err, identity.ErrStoreConflict) {
		t.Fatalf("expected ErrStoreConflict, got %v", err)
	}
	// Re-declaring the same binding is fine.
	if err := r.Declare("DS-2CD1023G0E-I", "IPC_G0", 42); err != nil {
		t.Fatalf("idempotent Declare failed: %v", err)
	}
}

func TestRegistryCuratedIDsStayBelowAutoRange(t *testing.T) {
	r := identity.NewRegistry()
	if err := r.Declare("DS-2CD1023G0E-I", "IPC_G0", 7); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	id, err := r.Resolve("DS-7608NI-K2", "NVR_K51")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id < identity.AutoIDFloor {
		t.Fatalf("auto id %d fell into the curated range", id)
	}
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	path := identity.DefaultRegistryPath(t.TempDir())

	r := identity.NewRegistry()
	if _, err := r.Resolve("DS-2CD1023G0E-I", "IPC_G0"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := r.Declare("DS-2TD1217B-3", "THERMAL", 12); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if err := r.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := identity.LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d pairs, want 2", loaded.Len())
	}
	id, err := loaded.Resolve("DS-2CD1023G0E-I", "IPC_G0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != identity.AutoIDFloor {
		t.Fatalf("id after round trip = %d, want %d", id, identity.AutoIDFloor)
	}
	// New assignments continue above everything persisted.
	next, err := loaded.Resolve("DS-7608NI-K2", "NVR_K51")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if next != identity.AutoIDFloor+1 {
		t.Fatalf("next auto id = %d, want %d", next, identity.AutoIDFloor+1)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	r, err := identity.LoadRegistry(identity.DefaultRegistryPath(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d pairs", r.Len())
	}
}
