package schematic

import (
	"errors"
	"fmt"
	"testing"
)

type fakeEntity struct {
	id   string
	name string
}

func (f *fakeEntity) UUID() string { return f.id }

func newFakeCollection() *Collection[*fakeEntity] {
	return NewCollection[*fakeEntity](map[string]KeyFunc[*fakeEntity]{
		"name": func(f *fakeEntity) string { return f.name },
	})
}

func TestCollectionLookups(t *testing.T) {
	c := newFakeCollection()
	a := &fakeEntity{id: "a", name: "alpha"}
	b := &fakeEntity{id: "b", name: "beta"}
	b2 := &fakeEntity{id: "b2", name: "beta"}
	c.Add(a)
	c.Add(b)
	c.Add(b2)

	if c.Len() != 3 {
		t.Fatalf("Expected 3 items, got %d", c.Len())
	}
	if got, ok := c.ByUUID("b"); !ok || got != b {
		t.Errorf("ByUUID miss: %v %v", got, ok)
	}
	if _, ok := c.ByUUID("zz"); ok {
		t.Error("ByUUID hit for unknown id")
	}

	betas := c.ByKey("name", "beta")
	if len(betas) != 2 || betas[0] != b || betas[1] != b2 {
		t.Errorf("ByKey order broken: %v", betas)
	}
	if got, ok := c.FirstByKey("name", "alpha"); !ok || got != a {
		t.Errorf("FirstByKey miss: %v %v", got, ok)
	}
}

func TestCollectionDirtyRebuild(t *testing.T) {
	c := newFakeCollection()
	a := &fakeEntity{id: "a", name: "alpha"}
	c.Add(a)

	if got, _ := c.FirstByKey("name", "alpha"); got != a {
		t.Fatal("Initial index miss")
	}

	// Mutating an indexed field without MarkDirty serves stale data;
	// with it, the next read rebuilds.
	a.name = "omega"
	c.MarkDirty()
	if _, ok := c.FirstByKey("name", "alpha"); ok {
		t.Error("Stale key still served after MarkDirty")
	}
	if got, ok := c.FirstByKey("name", "omega"); !ok || got != a {
		t.Error("New key not indexed after rebuild")
	}
}

func TestCollectionEmptyKeyNotIndexed(t *testing.T) {
	c := newFakeCollection()
	c.Add(&fakeEntity{id: "a", name: ""})

	if got := c.ByKey("name", ""); got != nil {
		t.Errorf("Empty keys must not be indexed, got %v", got)
	}
}

func TestCollectionRemove(t *testing.T) {
	c := newFakeCollection()
	a := &fakeEntity{id: "a", name: "alpha"}
	b := &fakeEntity{id: "b", name: "beta"}
	c.Add(a)
	c.Add(b)

	if err := c.Remove("fake", a); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	var nf *NotFoundError
	if err := c.Remove("fake", a); !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}

	got, err := c.RemoveByKey("fake", "name", "beta")
	if err != nil || got != b {
		t.Fatalf("RemoveByKey failed: %v %v", got, err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty collection, got %d items", c.Len())
	}

	if _, err := c.RemoveByUUID("fake", "b"); !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestCollectionInterleavedMutation(t *testing.T) {
	c := newFakeCollection()
	for i := 0; i < 10; i++ {
		c.Add(&fakeEntity{id: fmt.Sprintf("id%d", i), name: "n"})
	}
	for i := 0; i < 10; i += 2 {
		if _, err := c.RemoveByUUID("fake", fmt.Sprintf("id%d", i)); err != nil {
			t.Fatalf("RemoveByUUID failed: %v", err)
		}
	}

	if c.Len() != 5 {
		t.Fatalf("Expected 5 items, got %d", c.Len())
	}
	// Load order of survivors is preserved.
	for i, item := range c.Items() {
		want := fmt.Sprintf("id%d", i*2+1)
		if item.UUID() != want {
			t.Errorf("Order broken at %d: got %s, want %s", i, item.UUID(), want)
		}
	}
	if got := c.ByKey("name", "n"); len(got) != 5 {
		t.Errorf("Index not rebuilt after removals: %d entries", len(got))
	}
}
