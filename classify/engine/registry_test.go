package engine

import "testing"

func TestRegistry_RegisterGetDuplicate(t *testing.T) {
	r := NewRegistry[int]()
	if err := r.Register("a", 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("a", 2); err != ErrDup {
		t.Fatalf("expected ErrDup on duplicate registration, got %v", err)
	}

	v, ok := r.Get("a")
	if !ok || v != 1 {
		t.Fatalf("expected (1, true), got (%d, %v)", v, ok)
	}

	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}

func TestRegistry_UnregisterThenReregister(t *testing.T) {
	r := NewRegistry[int]()
	_ = r.Register("a", 1)
	r.Unregister("a")
	if r.IsRegistered("a") {
		t.Fatalf("expected 'a' to be unregistered")
	}
	if err := r.Register("a", 2); err != nil {
		t.Fatalf("expected re-registration to succeed, got %v", err)
	}
}

func TestEngineRegistry_PreRegisteredIDsAndAliases(t *testing.T) {
	for _, name := range []string{IDHyperSplit, "hypersplit", IDTSS, "tss"} {
		if _, ok := Lookup(name); !ok {
			t.Fatalf("expected engine registered under %q", name)
		}
	}
}
