package schematic

// Entity is anything stored in a Collection: every schematic entity
// has a document-unique identifier.
type Entity interface {
	UUID() string
}

// KeyFunc extracts a secondary index key from an item. An empty key is
// not indexed.
type KeyFunc[T Entity] func(T) string

// Collection stores the entities of one kind in load order and serves
// O(1) lookups by identifier and by named secondary keys. Indexes are
// rebuilt lazily: mutations only set a dirty flag, and the next read
// that needs an index pays for a full rebuild. This trades worst-case
// read latency for cheap mutation bursts.
type Collection[T Entity] struct {
	items     []T
	secondary map[string]KeyFunc[T]

	byUUID map[string]T
	index  map[string]map[string][]T
	dirty  bool
}

// NewCollection creates a collection with the given named secondary
// indexes.
func NewCollection[T Entity](secondary map[string]KeyFunc[T]) *Collection[T] {
	return &Collection[T]{
		secondary: secondary,
		dirty:     true,
	}
}

// Add appends an item, keeping load order. Indexes are invalidated,
// not updated.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
	c.dirty = true
}

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns the items in load order. The slice is shared; callers
// must not modify it.
func (c *Collection[T]) Items() []T { return c.items }

// MarkDirty invalidates all indexes. Mutators call it after changing a
// field that a secondary index is built from.
func (c *Collection[T]) MarkDirty() { c.dirty = true }

// ByUUID returns the item with the given identifier.
func (c *Collection[T]) ByUUID(id string) (T, bool) {
	c.ensure()
	item, ok := c.byUUID[id]
	return item, ok
}

// ByKey returns every item whose secondary key under the named index
// equals key, in load order.
func (c *Collection[T]) ByKey(index, key string) []T {
	c.ensure()
	return c.index[index][key]
}

// FirstByKey returns the first item matching key under the named
// index.
func (c *Collection[T]) FirstByKey(index, key string) (T, bool) {
	var zero T
	matches := c.ByKey(index, key)
	if len(matches) == 0 {
		return zero, false
	}
	return matches[0], true
}

// Remove deletes the item by object identity. It returns a
// NotFoundError when the item is not present.
func (c *Collection[T]) Remove(kind string, item T) error {
	for i, it := range c.items {
		if it.UUID() == item.UUID() {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.dirty = true
			return nil
		}
	}
	return &NotFoundError{Kind: kind, Key: item.UUID()}
}

// RemoveByUUID deletes the item with the given identifier.
func (c *Collection[T]) RemoveByUUID(kind, id string) (T, error) {
	var zero T
	for i, it := range c.items {
		if it.UUID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.dirty = true
			return it, nil
		}
	}
	return zero, &NotFoundError{Kind: kind, Key: id}
}

// RemoveByKey deletes the first item matching key under the named
// index.
func (c *Collection[T]) RemoveByKey(kind, index, key string) (T, error) {
	var zero T
	item, ok := c.FirstByKey(index, key)
	if !ok {
		return zero, &NotFoundError{Kind: kind, Key: key}
	}
	if err := c.Remove(kind, item); err != nil {
		return zero, err
	}
	return item, nil
}

// ensure rebuilds every index from the current item list when the
// dirty flag is set, and clears the flag. All read paths go through
// here; no index is ever served stale.
func (c *Collection[T]) ensure() {
	if !c.dirty {
		return
	}
	c.byUUID = make(map[string]T, len(c.items))
	c.index = make(map[string]map[string][]T, len(c.secondary))
	for name := range c.secondary {
		c.index[name] = make(map[string][]T)
	}
	for _, item := range c.items {
		c.byUUID[item.UUID()] = item
		for name, keyOf := range c.secondary {
			key := keyOf(item)
			if key == "" {
				continue
			}
			c.index[name][key] = append(c.index[name][key], item)
		}
	}
	c.dirty = false
}
