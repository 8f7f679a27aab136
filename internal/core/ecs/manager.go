package ecs

import (
	"errors"

	"github.com/orbisengine/orbis/internal/core/messaging"
	"github.com/orbisengine/orbis/internal/core/observability/log"
)

// ChannelEntityLifecycle is the reserved message channel carrying entity
// lifecycle commands and events.
const ChannelEntityLifecycle = "entity.lifecycle"

// Lifecycle message types. Commands request a change; the manager emits the
// matching event once the change is applied.
const (
	CmdAddEntity               = "cmd_add_entity"
	CmdRemoveEntity            = "cmd_remove_entity"
	EvEntityAddedToManager     = "ev_entity_added_to_manager"
	EvEntityRemovedFromManager = "ev_entity_removed_from_manager"
)

const managerMessageSource = "entity_manager"

// Manager owns the canonical entity collection and the ordered processor
// list. Entities reach processors only through the manager's add and
// reconsider paths, which keeps every processor's accepted set a strict
// subset of the master collection.
type Manager struct {
	entities   *Collection
	processors []Processor
	nextID     EntityID

	queue *messaging.Queue
	log   log.Log
}

// NewManager creates a manager. queue may be nil, in which case lifecycle
// commands and events are disabled and entities are managed through direct
// calls only. logger may be nil; the process logger is used then.
func NewManager(queue *messaging.Queue, logger log.Log) *Manager {
	if logger == nil {
		logger = log.Provide()
	}
	return &Manager{
		entities: NewCollection(),
		queue:    queue,
		log:      logger,
	}
}

// AddEntity registers an entity: assigns the next sequential id when the
// entity has none, sets the manager back-reference, inserts it into the
// master collection, and offers it to every registered processor.
// Re-registering an already-assigned entity neither reassigns its id nor
// duplicates processor membership.
func (m *Manager) AddEntity(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	if e.id == 0 {
		m.nextID++
		e.id = m.nextID
	} else if e.id > m.nextID {
		// Keep the allocator ahead of externally assigned ids so they are
		// never handed out a second time.
		m.nextID = e.id
	}
	e.manager = m
	if err := m.entities.Add(e); err != nil {
		return err
	}
	for _, p := range m.processors {
		p.AddEntity(e)
	}
	return nil
}

// RemoveEntity unregisters an entity: clears its manager back-reference,
// removes it from the master collection and from every processor holding
// it. No-op if the manager does not hold this entity. The id is retained.
func (m *Manager) RemoveEntity(e *Entity) {
	if e == nil || !m.entities.Has(e) {
		return
	}
	e.manager = nil
	m.entities.RemoveID(e.id)
	for _, p := range m.processors {
		p.RemoveEntityByID(e.id)
	}
}

// RemoveEntityByID unregisters the entity stored under id. No-op if absent.
func (m *Manager) RemoveEntityByID(id EntityID) {
	e, err := m.entities.Get(id)
	if err != nil {
		return
	}
	m.RemoveEntity(e)
}

// ReconsiderEntity re-runs every processor's acceptance test against e.
// This is the sole path by which component mutations reach processor
// membership; Entity mutation methods call it through the back-reference.
func (m *Manager) ReconsiderEntity(e *Entity) {
	if e == nil {
		return
	}
	for _, p := range m.processors {
		p.ReconsiderEntity(e)
	}
}

// AddEntityProcessor appends a processor. Registration order defines the
// per-tick iteration order. Every currently-held entity is offered to the
// new processor immediately, so processor-vs-entity registration order does
// not affect final membership.
func (m *Manager) AddEntityProcessor(p Processor) {
	if p == nil {
		return
	}
	p.base().bind(p)
	m.processors = append(m.processors, p)
	m.entities.Each(func(e *Entity) {
		p.AddEntity(e)
	})
}

// InitializeEntityProcessors runs every processor's Initialize in
// registration order. Errors are aggregated, not short-circuited.
func (m *Manager) InitializeEntityProcessors() error {
	var errs []error
	for _, p := range m.processors {
		if err := p.Initialize(); err != nil {
			errs = append(errs, err)
			continue
		}
		p.base().setState(ProcessorInitialized)
	}
	return errors.Join(errs...)
}

// CleanupEntityProcessors runs every processor's Cleanup in registration
// order. Errors are aggregated.
func (m *Manager) CleanupEntityProcessors() error {
	var errs []error
	for _, p := range m.processors {
		if err := p.Cleanup(); err != nil {
			errs = append(errs, err)
			continue
		}
		p.base().setState(ProcessorCleanedUp)
	}
	return errors.Join(errs...)
}

// Update drains pending lifecycle commands, then runs every processor's
// Update in registration order. The caller shifts the queue's buffers once
// per tick boundary before calling Update. Processor errors are aggregated
// so one failing processor cannot starve the rest of the tick.
func (m *Manager) Update(dt float64) error {
	m.drainLifecycleCommands()
	var errs []error
	for _, p := range m.processors {
		p.base().setState(ProcessorRunning)
		if err := p.Update(dt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Draw runs every processor's Draw in registration order. Not gated by
// message processing.
func (m *Manager) Draw() error {
	var errs []error
	for _, p := range m.processors {
		if err := p.Draw(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HasEntity reports whether this exact entity is managed.
func (m *Manager) HasEntity(e *Entity) bool { return m.entities.Has(e) }

// HasEntityByID reports whether an entity with the given id is managed.
func (m *Manager) HasEntityByID(id EntityID) bool { return m.entities.HasID(id) }

// Entity returns the managed entity with the given id, or
// ErrEntityNotFound.
func (m *Manager) Entity(id EntityID) (*Entity, error) { return m.entities.Get(id) }

// EntityCount returns the number of managed entities.
func (m *Manager) EntityCount() int { return m.entities.Len() }

// ProcessorCount returns the number of registered processors.
func (m *Manager) ProcessorCount() int { return len(m.processors) }

// Entities returns the master collection.
func (m *Manager) Entities() *Collection { return m.entities }

// drainLifecycleCommands applies cmd_add_entity / cmd_remove_entity
// messages from the reserved channel and emits the matching event for each
// applied command. Events land in stand-by and become observable after the
// next shift.
func (m *Manager) drainLifecycleCommands() {
	if m.queue == nil {
		return
	}
	m.queue.Receive(ChannelEntityLifecycle, func(msg messaging.Message) {
		e, ok := msg.Data.(*Entity)
		if !ok {
			m.log.Warn("lifecycle command with unexpected payload",
				log.String("type", msg.Type))
			return
		}
		switch msg.Type {
		case CmdAddEntity:
			if err := m.AddEntity(e); err != nil {
				m.log.Error("lifecycle add failed", log.Error(err))
				return
			}
			m.queue.Send(ChannelEntityLifecycle,
				messaging.NewMessage(EvEntityAddedToManager, managerMessageSource, e))
		case CmdRemoveEntity:
			m.RemoveEntity(e)
			m.queue.Send(ChannelEntityLifecycle,
				messaging.NewMessage(EvEntityRemovedFromManager, managerMessageSource, e))
		}
	})
}
