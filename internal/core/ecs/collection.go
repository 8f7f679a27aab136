package ecs

// Collection is a membership index from entity id to entity. It does not
// own the entities it holds: removing an entry never touches the entity's
// manager back-reference or lifetime. The Manager uses one as the source of
// truth for the simulation; every processor holds one for its accepted set.
type Collection struct {
	entities map[EntityID]*Entity
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{entities: make(map[EntityID]*Entity)}
}

// Add inserts or replaces the entry keyed by the entity's id.
func (c *Collection) Add(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	c.entities[e.id] = e
	return nil
}

// Remove deletes the entry for the given entity. No-op if absent.
func (c *Collection) Remove(e *Entity) {
	if e == nil {
		return
	}
	c.RemoveID(e.id)
}

// RemoveID deletes the entry for the given id. No-op if absent.
func (c *Collection) RemoveID(id EntityID) {
	delete(c.entities, id)
}

// Get returns the entity stored under id, or ErrEntityNotFound.
func (c *Collection) Get(id EntityID) (*Entity, error) {
	e, ok := c.entities[id]
	if !ok {
		return nil, ErrEntityNotFound
	}
	return e, nil
}

// Has reports whether this exact entity is stored: true only when the entry
// under the entity's id is reference-identical to e. Guards against id
// collisions across independently-constructed entities.
func (c *Collection) Has(e *Entity) bool {
	if e == nil {
		return false
	}
	stored, ok := c.entities[e.id]
	return ok && stored == e
}

// HasID reports membership of an id.
func (c *Collection) HasID(id EntityID) bool {
	_, ok := c.entities[id]
	return ok
}

// Len returns the number of entries.
func (c *Collection) Len() int { return len(c.entities) }

// Each invokes fn once per current entry. Order is unspecified. The
// traversal is finite and restartable; fn must not mutate the collection.
func (c *Collection) Each(fn func(*Entity)) {
	for _, e := range c.entities {
		fn(e)
	}
}

// All returns a snapshot slice of the current entries, in no particular
// order. Safe to mutate the collection while ranging the snapshot.
func (c *Collection) All() []*Entity {
	all := make([]*Entity, 0, len(c.entities))
	for _, e := range c.entities {
		all = append(all, e)
	}
	return all
}

// Clear empties the collection. Entity ownership and manager back-refs are
// untouched; callers that need those cleared do it themselves.
func (c *Collection) Clear() {
	clear(c.entities)
}
