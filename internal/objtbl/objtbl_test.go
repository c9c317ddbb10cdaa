package objtbl

import "testing"

func TestInsertLookupRemove(t *testing.T) {
	tbl := New()
	if err := tbl.Insert(1, TypeBlend, "blend-state", nil); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	v, err := tbl.Lookup(1, TypeBlend)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if v != "blend-state" {
		t.Errorf("Lookup value = %v, want %q", v, "blend-state")
	}
	if !tbl.Contains(1) {
		t.Errorf("Contains(1) = false, want true")
	}
	if err := tbl.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if tbl.Contains(1) {
		t.Errorf("Contains(1) after Remove = true, want false")
	}
}

func TestInsertRejectsDuplicateSameType(t *testing.T) {
	tbl := New()
	if err := tbl.Insert(1, TypeBlend, 1, nil); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := tbl.Insert(1, TypeBlend, 2, nil)
	if err == nil {
		t.Fatalf("expected a duplicate-handle error")
	}
	he, ok := err.(*HandleError)
	if !ok || he.Err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLookupTypeMismatch(t *testing.T) {
	tbl := New()
	_ = tbl.Insert(1, TypeBlend, 1, nil)
	_, err := tbl.Lookup(1, TypeDSA)
	if err == nil {
		t.Fatalf("expected a type-mismatch error")
	}
}

func TestLookupMissingHandle(t *testing.T) {
	tbl := New()
	_, err := tbl.Lookup(42, TypeQuery)
	if err == nil {
		t.Fatalf("expected ErrNotFound")
	}
}

func TestRemoveInvokesDestructor(t *testing.T) {
	tbl := New()
	destroyed := false
	_ = tbl.Insert(1, TypeSurface, "surface-obj", func(v any) {
		if v != "surface-obj" {
			t.Errorf("destructor got %v, want %q", v, "surface-obj")
		}
		destroyed = true
	})
	if err := tbl.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !destroyed {
		t.Errorf("expected destructor to run on Remove")
	}
}

func TestRemoveMissingHandle(t *testing.T) {
	tbl := New()
	if err := tbl.Remove(1); err == nil {
		t.Fatalf("expected ErrNotFound removing a handle that was never inserted")
	}
}
