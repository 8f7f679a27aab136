package ecs

// ProcessorState tracks a processor's top-level lifecycle. Entity
// membership is an orthogonal sub-state updated continuously.
type ProcessorState uint8

const (
	ProcessorConstructed ProcessorState = iota
	ProcessorInitialized
	ProcessorRunning
	ProcessorCleanedUp
)

// Processor runs per-tick logic against the subset of entities it accepts.
//
// Concrete processors embed BaseProcessor (which supplies everything except
// AcceptsEntity) and implement AcceptsEntity as a pure predicate over the
// entity's component set. The hooks and Update/Draw/Initialize/Cleanup
// default to no-ops and are overridden as needed.
type Processor interface {
	// Initialize is called once by the manager before the first tick.
	Initialize() error
	// Cleanup is called once by the manager on shutdown.
	Cleanup() error
	// Update runs the processor's per-tick logic.
	Update(dt float64) error
	// Draw runs the processor's per-tick presentation pass.
	Draw() error

	// AcceptsEntity decides membership from the entity's components alone.
	// It must be repeatable: same component set, same answer.
	AcceptsEntity(*Entity) bool

	// ProcessAcceptedEntity fires after an entity enters the accepted set.
	ProcessAcceptedEntity(*Entity)
	// ProcessRemovedEntity fires after an entity leaves the accepted set.
	ProcessRemovedEntity(*Entity)

	// AddEntity offers an entity; no-op unless AcceptsEntity approves.
	AddEntity(*Entity)
	// RemoveEntity drops an entity if held; no-op otherwise.
	RemoveEntity(*Entity)
	// RemoveEntityByID drops an entity by id if held; no-op otherwise.
	RemoveEntityByID(EntityID)
	// ReconsiderEntity re-runs the predicate and fires at most one of
	// add/remove to make membership consistent with it.
	ReconsiderEntity(*Entity)

	// HasEntity reports membership of an id in the accepted set.
	HasEntity(EntityID) bool
	// EntityCount returns the size of the accepted set.
	EntityCount() int
	// State returns the top-level lifecycle state.
	State() ProcessorState

	// base exposes the embedded BaseProcessor to the manager, and pins
	// BaseProcessor embedding as the only way to implement Processor.
	base() *BaseProcessor
}

// BaseProcessor carries the accepted-entity set and the membership
// machinery shared by every processor. Zero value is usable; the manager
// binds it on registration.
type BaseProcessor struct {
	entities *Collection
	state    ProcessorState

	// self is the full Processor this base is embedded in; needed so the
	// membership machinery dispatches to the concrete predicate and hooks.
	self Processor
}

func (b *BaseProcessor) base() *BaseProcessor { return b }

// bind wires the base to its enclosing processor. Called by the manager on
// registration; idempotent.
func (b *BaseProcessor) bind(self Processor) {
	b.self = self
	if b.entities == nil {
		b.entities = NewCollection()
	}
}

func (b *BaseProcessor) setState(s ProcessorState) { b.state = s }

// State returns the top-level lifecycle state.
func (b *BaseProcessor) State() ProcessorState { return b.state }

// Entities returns the accepted set.
func (b *BaseProcessor) Entities() *Collection {
	if b.entities == nil {
		b.entities = NewCollection()
	}
	return b.entities
}

// AddEntity inserts e into the accepted set if the predicate approves and
// e is not already held, then fires ProcessAcceptedEntity. No-op otherwise.
func (b *BaseProcessor) AddEntity(e *Entity) {
	if e == nil || b.self == nil || !b.self.AcceptsEntity(e) {
		return
	}
	if b.Entities().HasID(e.ID()) {
		return
	}
	_ = b.entities.Add(e)
	b.self.ProcessAcceptedEntity(e)
}

// RemoveEntity drops e from the accepted set if held, then fires
// ProcessRemovedEntity. No-op if absent.
func (b *BaseProcessor) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	b.RemoveEntityByID(e.ID())
}

// RemoveEntityByID drops the held entity with the given id, then fires
// ProcessRemovedEntity. No-op if absent.
func (b *BaseProcessor) RemoveEntityByID(id EntityID) {
	e, err := b.Entities().Get(id)
	if err != nil {
		return
	}
	b.entities.RemoveID(id)
	if b.self != nil {
		b.self.ProcessRemovedEntity(e)
	}
}

// ReconsiderEntity reconciles membership with the predicate: held but no
// longer accepted removes, not held but now accepted adds. Exactly one of
// the two fires per call, and neither when membership already matches.
func (b *BaseProcessor) ReconsiderEntity(e *Entity) {
	if e == nil || b.self == nil {
		return
	}
	accepted := b.self.AcceptsEntity(e)
	held := b.Entities().HasID(e.ID())
	switch {
	case accepted && !held:
		_ = b.entities.Add(e)
		b.self.ProcessAcceptedEntity(e)
	case !accepted && held:
		b.entities.RemoveID(e.ID())
		b.self.ProcessRemovedEntity(e)
	}
}

// HasEntity reports membership of an id in the accepted set.
func (b *BaseProcessor) HasEntity(id EntityID) bool {
	return b.Entities().HasID(id)
}

// EntityCount returns the size of the accepted set.
func (b *BaseProcessor) EntityCount() int {
	return b.Entities().Len()
}

// Default lifecycle hooks. Override as needed.

func (b *BaseProcessor) Initialize() error      { return nil }
func (b *BaseProcessor) Cleanup() error         { return nil }
func (b *BaseProcessor) Update(_ float64) error { return nil }
func (b *BaseProcessor) Draw() error            { return nil }

func (b *BaseProcessor) ProcessAcceptedEntity(*Entity) {}
func (b *BaseProcessor) ProcessRemovedEntity(*Entity)  {}
