package ecs

// EntityID identifies an entity within one manager. 0 means unassigned.
type EntityID uint64

// Entity is a simulation object defined by its attached components. It is
// constructed free-standing, populated, then registered with a Manager,
// which assigns its id. Component mutations on a managed entity trigger
// reconsideration against every registered processor automatically.
type Entity struct {
	id         EntityID
	name       string
	parent     *Entity
	components map[ComponentTypeID]Component

	// Non-owning back-reference; set by Manager.AddEntity, cleared on
	// removal. Used only to propagate mutation notifications.
	manager *Manager
}

// NewEntity creates an unmanaged entity with no components.
func NewEntity(name string) *Entity {
	return &Entity{
		name:       name,
		components: make(map[ComponentTypeID]Component),
	}
}

func (e *Entity) ID() EntityID { return e.id }

func (e *Entity) Name() string        { return e.name }
func (e *Entity) SetName(name string) { e.name = name }

// Parent returns the hierarchy back-link, if any. Parentage carries no
// ownership and plays no part in processor membership.
func (e *Entity) Parent() *Entity          { return e.parent }
func (e *Entity) SetParent(parent *Entity) { e.parent = parent }

// Managed reports whether the entity is currently registered with a manager.
func (e *Entity) Managed() bool { return e.manager != nil }

// AddComponent attaches a component, keyed by its type id. An existing
// component of the same kind is overwritten. Triggers reconsideration while
// managed.
func (e *Entity) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	e.components[c.TypeID()] = c
	e.Reconsider()
	return nil
}

// AddComponentByType default-constructs a component of a registered kind
// and attaches it, returning the new instance. Fails with
// ErrComponentNotRegistered when the kind has no factory; the generic
// Attach form is the compile-time checked alternative.
func (e *Entity) AddComponentByType(id ComponentTypeID) (Component, error) {
	c, err := NewComponent(id)
	if err != nil {
		return nil, err
	}
	return c, e.AddComponent(c)
}

// RemoveComponent detaches the given component instance's kind. No-op if no
// component of that kind is attached.
func (e *Entity) RemoveComponent(c Component) {
	if c == nil {
		return
	}
	e.RemoveComponentID(c.TypeID())
}

// RemoveComponentID detaches the component of the given kind. No-op if
// absent; triggers reconsideration only when something was removed.
func (e *Entity) RemoveComponentID(id ComponentTypeID) {
	if _, ok := e.components[id]; !ok {
		return
	}
	delete(e.components, id)
	e.Reconsider()
}

// HasComponent reports whether a component of the same kind as c is
// attached.
func (e *Entity) HasComponent(c Component) bool {
	if c == nil {
		return false
	}
	return e.HasComponentID(c.TypeID())
}

func (e *Entity) HasComponentID(id ComponentTypeID) bool {
	_, ok := e.components[id]
	return ok
}

// GetComponentID returns the attached component of the given kind, or
// ErrComponentNotFound. Loud by design: a silently-nil component is the
// null-dereference factory this API replaces.
func (e *Entity) GetComponentID(id ComponentTypeID) (Component, error) {
	c, ok := e.components[id]
	if !ok {
		return nil, ErrComponentNotFound
	}
	return c, nil
}

// ComponentCount returns the number of attached components.
func (e *Entity) ComponentCount() int { return len(e.components) }

// ComponentTypes returns the ids of all attached components, in no
// particular order.
func (e *Entity) ComponentTypes() []ComponentTypeID {
	ids := make([]ComponentTypeID, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	return ids
}

// ClearComponents removes every component in one step, triggering a single
// reconsideration rather than one per component.
func (e *Entity) ClearComponents() {
	if len(e.components) == 0 {
		return
	}
	clear(e.components)
	e.Reconsider()
}

// Reconsider asks the owning manager to re-run every processor's acceptance
// test against this entity. No-op while unmanaged.
func (e *Entity) Reconsider() {
	if e.manager != nil {
		e.manager.ReconsiderEntity(e)
	}
}

// Attach default-constructs a component of kind T and attaches it,
// returning the new instance.
func Attach[T any, PT ComponentPtr[T]](e *Entity) PT {
	c := PT(new(T))
	e.components[c.TypeID()] = c
	e.Reconsider()
	return c
}

// Detach removes the component of kind T. No-op if absent.
func Detach[T any, PT ComponentPtr[T]](e *Entity) {
	e.RemoveComponentID(typeIDOf[T, PT]())
}

// Has reports whether a component of kind T is attached.
func Has[T any, PT ComponentPtr[T]](e *Entity) bool {
	return e.HasComponentID(typeIDOf[T, PT]())
}

// Get returns the attached component of kind T, or ErrComponentNotFound.
// The returned pointer is the attached instance itself, never a copy.
func Get[T any, PT ComponentPtr[T]](e *Entity) (PT, error) {
	c, ok := e.components[typeIDOf[T, PT]()]
	if !ok {
		return nil, ErrComponentNotFound
	}
	return c.(PT), nil
}

// With invokes fn with the component of kind T, or returns
// ErrComponentNotFound when absent.
func With[T any, PT ComponentPtr[T]](e *Entity, fn func(PT)) error {
	c, err := Get[T, PT](e)
	if err != nil {
		return err
	}
	fn(c)
	return nil
}

// MaybeWith invokes fn with the component of kind T if attached, and
// silently skips otherwise.
func MaybeWith[T any, PT ComponentPtr[T]](e *Entity, fn func(PT)) {
	if c, err := Get[T, PT](e); err == nil {
		fn(c)
	}
}

// From projects a value out of the component of kind T, or returns
// ErrComponentNotFound when absent.
func From[T any, PT ComponentPtr[T], R any](e *Entity, fn func(PT) R) (R, error) {
	c, err := Get[T, PT](e)
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(c), nil
}

// FromOr projects a value out of the component of kind T, falling back to
// def when absent. def is evaluated lazily: it is never called while the
// component is attached.
func FromOr[T any, PT ComponentPtr[T], R any](e *Entity, fn func(PT) R, def func() R) R {
	c, err := Get[T, PT](e)
	if err != nil {
		return def()
	}
	return fn(c)
}
