package ecs

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ComponentTypeID identifies a logical component kind. All instances of the
// same kind share one id; distinct kinds have distinct ids.
type ComponentTypeID uint64

// Component is a capability tag plus data bundle attached to exactly one
// entity at a time.
//
// TypeID must be receiver-independent: implementations return a
// package-level id computed once via ComponentType, never a value derived
// from instance state. The generic accessors (Get, Attach, ...) call it on
// a zero receiver.
type Component interface {
	TypeID() ComponentTypeID
}

// ComponentType derives the type id for a component kind from its literal
// name. The hash is stable across process runs and carries no address or
// registration-order dependency.
func ComponentType(name string) ComponentTypeID {
	return ComponentTypeID(xxhash.Sum64String(name))
}

// ComponentFactory produces a default-constructed instance of one component
// kind.
type ComponentFactory func() Component

// componentRegistry backs the runtime construction path. The generic
// Attach[T] path does not consult it.
var componentRegistry = struct {
	mu        sync.RWMutex
	factories map[ComponentTypeID]ComponentFactory
}{factories: make(map[ComponentTypeID]ComponentFactory)}

// RegisterComponent binds a factory to a component type id. Re-registering
// an id replaces the previous factory.
func RegisterComponent(id ComponentTypeID, factory ComponentFactory) error {
	if factory == nil {
		return ErrNilComponentFactory
	}
	componentRegistry.mu.Lock()
	componentRegistry.factories[id] = factory
	componentRegistry.mu.Unlock()
	return nil
}

// NewComponent constructs a default instance of a registered component
// kind. Returns ErrComponentNotRegistered when no factory is bound to id.
func NewComponent(id ComponentTypeID) (Component, error) {
	componentRegistry.mu.RLock()
	factory, ok := componentRegistry.factories[id]
	componentRegistry.mu.RUnlock()
	if !ok {
		return nil, ErrComponentNotRegistered
	}
	return factory(), nil
}

// ComponentPtr constrains a pointer-to-struct component type, which is what
// the generic entity accessors operate on.
type ComponentPtr[T any] interface {
	*T
	Component
}

// typeIDOf resolves the type id of a component kind without an instance.
// Relies on the receiver-independence contract of Component.TypeID.
func typeIDOf[T any, PT ComponentPtr[T]]() ComponentTypeID {
	var zero PT
	return zero.TypeID()
}
