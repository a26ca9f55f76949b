package document

import (
	"sync"
	"testing"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	d1 := New(nil, WithSurfaceFactory(nil))
	d2 := New(nil, WithSurfaceFactory(nil))
	if reg.Current() != nil || len(reg.Documents()) != 0 {
		t.Fatal("expected empty registry")
	}
	if reg.SetCurrent(d1) {
		t.Error("unregistered documents can't be current")
	}

	reg.Register(d1)
	reg.Register(d1)
	reg.Register(d2)
	if docs := reg.Documents(); len(docs) != 2 || docs[0] != d1 || docs[1] != d2 {
		t.Errorf("unexpected documents %v", docs)
	}
	if reg.Index(d2) != 1 {
		t.Errorf("unexpected index %d", reg.Index(d2))
	}

	if !reg.SetCurrent(d2) || reg.Current() != d2 {
		t.Fatal("set current should succeed")
	}
	if !reg.Unregister(d2) || reg.Current() != nil || reg.Index(d2) != -1 {
		t.Error("unregistering the current document should clear the current slot")
	}
	if reg.Unregister(d2) {
		t.Error("second unregister should fail")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := New(reg, WithSurfaceFactory(nil))
			d.Activate()
		}()
	}
	wg.Wait()
	if n := len(reg.Documents()); n != 20 {
		t.Errorf("expected 20 documents, got %d", n)
	}
	if reg.Current() == nil {
		t.Error("expected a current document")
	}
}
