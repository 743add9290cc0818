package value_test

import (
	"testing"

	"flare/internal/value"
)

func TestCopyStringCanonicalizes(t *testing.T) {
	reg := value.NewRegistry()

	a := reg.CopyString("hello")
	b := reg.CopyString("hello")
	if a.Obj != b.Obj {
		t.Fatal("CopyString must return the canonical object")
	}
	if reg.ObjectCount() != 1 {
		t.Errorf("object count = %d, want 1", reg.ObjectCount())
	}
	if a.AsString().Hash != value.HashString("hello") {
		t.Error("hash must be precomputed at construction")
	}
}

func TestTakeStringReusesInterned(t *testing.T) {
	reg := value.NewRegistry()

	a := reg.CopyString("shared")
	// буфер, собранный в рантайме (конкатенация)
	b := reg.TakeString("sha" + "red")
	if a.Obj != b.Obj {
		t.Fatal("TakeString must drop the fresh buffer and return the canonical object")
	}
	if reg.ObjectCount() != 1 {
		t.Errorf("object count = %d, want 1", reg.ObjectCount())
	}

	c := reg.TakeString("new content")
	if c.Obj == a.Obj {
		t.Error("distinct content must get a distinct object")
	}
	if reg.ObjectCount() != 2 {
		t.Errorf("object count = %d, want 2", reg.ObjectCount())
	}
}

func TestObjectListTracksCreations(t *testing.T) {
	reg := value.NewRegistry()
	reg.CopyString("one")
	reg.CopyString("two")
	reg.CopyString("three")

	count := 0
	for o := reg.Head(); o != nil; o = o.Next {
		count++
	}
	if count != 3 {
		t.Errorf("object list holds %d nodes, want 3", count)
	}
}

func TestFindStringReturnsSameIdentity(t *testing.T) {
	reg := value.NewRegistry()
	s := reg.CopyString("identity").AsString()
	if got := reg.Strings().FindString(s.Str, s.Hash); got != s {
		t.Error("find_string of an interned string must return the same object")
	}
}

func TestFreeAllTearsDownEverything(t *testing.T) {
	reg := value.NewRegistry()
	reg.CopyString("a")
	reg.CopyString("b")

	reg.FreeAll()
	if reg.ObjectCount() != 0 {
		t.Errorf("object count after teardown = %d", reg.ObjectCount())
	}
	if reg.Head() != nil {
		t.Error("object list must be empty after teardown")
	}
	if reg.Strings().Count() != 0 {
		t.Error("intern table must be empty after teardown")
	}

	// реестр остаётся рабочим
	v := reg.CopyString("a")
	if !v.IsString() || reg.ObjectCount() != 1 {
		t.Error("registry must be reusable after teardown")
	}
}
