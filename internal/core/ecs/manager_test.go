package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orbisengine/orbis/internal/core/messaging"
)

// orderProcessor appends its tag to a shared journal on every Update/Draw,
// so tests can observe fan-out ordering.
type orderProcessor struct {
	BaseProcessor
	tag     string
	journal *[]string
}

func (p *orderProcessor) AcceptsEntity(e *Entity) bool { return e.HasComponentID(healthType) }

func (p *orderProcessor) Update(_ float64) error {
	*p.journal = append(*p.journal, p.tag+".update")
	return nil
}

func (p *orderProcessor) Draw() error {
	*p.journal = append(*p.journal, p.tag+".draw")
	return nil
}

func TestManager_AddEntityAssignsSequentialIDs(t *testing.T) {
	m := NewManager(nil, nil)

	first := NewEntity("first")
	second := NewEntity("second")
	require.NoError(t, m.AddEntity(first))
	require.NoError(t, m.AddEntity(second))

	require.Equal(t, EntityID(1), first.ID())
	require.Equal(t, EntityID(2), second.ID())
	require.True(t, first.Managed())
	require.True(t, m.HasEntity(first))
}

func TestManager_AddEntityIdempotentID(t *testing.T) {
	m := NewManager(nil, nil)
	e := NewEntity("stable")

	require.NoError(t, m.AddEntity(e))
	id := e.ID()
	require.NoError(t, m.AddEntity(e))
	require.Equal(t, id, e.ID(), "re-registration must not reassign the id")
	require.Equal(t, 1, m.EntityCount())
}

func TestManager_AddEntityNil(t *testing.T) {
	m := NewManager(nil, nil)
	require.ErrorIs(t, m.AddEntity(nil), ErrNilEntity)
}

func TestManager_IDsNotReusedAfterRemoval(t *testing.T) {
	m := NewManager(nil, nil)
	first := NewEntity("first")
	require.NoError(t, m.AddEntity(first))
	m.RemoveEntity(first)

	second := NewEntity("second")
	require.NoError(t, m.AddEntity(second))
	require.Equal(t, EntityID(2), second.ID())

	// A removed entity keeps its id.
	require.Equal(t, EntityID(1), first.ID())
	require.False(t, first.Managed())
}

func TestManager_RemoveEntity(t *testing.T) {
	m := NewManager(nil, nil)
	p := &healthProcessor{}
	m.AddEntityProcessor(p)

	e := NewEntity("doomed")
	require.NoError(t, e.AddComponent(&Health{}))
	require.NoError(t, m.AddEntity(e))
	require.True(t, p.HasEntity(e.ID()))

	m.RemoveEntity(e)
	require.False(t, m.HasEntity(e))
	require.False(t, p.HasEntity(e.ID()), "processors must drop removed entities")
	require.False(t, e.Managed())
}

func TestManager_RemoveMissingIsNoop(t *testing.T) {
	m := NewManager(nil, nil)
	m.RemoveEntityByID(99)
	m.RemoveEntity(nil)
	m.RemoveEntity(NewEntity("never-added"))
	require.Equal(t, 0, m.EntityCount())
}

func TestManager_EntityLookup(t *testing.T) {
	m := NewManager(nil, nil)
	e := NewEntity("findme")
	require.NoError(t, m.AddEntity(e))

	got, err := m.Entity(e.ID())
	require.NoError(t, err)
	require.Same(t, e, got)

	_, err = m.Entity(99)
	require.ErrorIs(t, err, ErrEntityNotFound)
}

func TestManager_MembershipFollowsComponentMutation(t *testing.T) {
	m := NewManager(nil, nil)
	p := &healthProcessor{}
	m.AddEntityProcessor(p)

	e := NewEntity("mutant")
	require.NoError(t, m.AddEntity(e))
	require.False(t, p.HasEntity(e.ID()))

	// Adding the component pulls the entity in without re-registration.
	require.NoError(t, e.AddComponent(&Health{}))
	require.True(t, p.HasEntity(e.ID()))

	// Removing it pushes the entity back out.
	e.RemoveComponentID(healthType)
	require.False(t, p.HasEntity(e.ID()))
}

func TestManager_ClearComponentsDropsMembership(t *testing.T) {
	m := NewManager(nil, nil)
	p := &healthProcessor{}
	m.AddEntityProcessor(p)

	e := NewEntity("stripped")
	require.NoError(t, e.AddComponent(&Health{}))
	require.NoError(t, m.AddEntity(e))
	require.True(t, p.HasEntity(e.ID()))

	e.ClearComponents()
	require.False(t, p.HasEntity(e.ID()))
	require.Equal(t, []EntityID{e.ID()}, p.removed, "clear must trigger one transition, not one per component")
}

func TestManager_LateProcessorSeesExistingEntities(t *testing.T) {
	m := NewManager(nil, nil)
	e := NewEntity("early")
	require.NoError(t, e.AddComponent(&Health{}))
	require.NoError(t, m.AddEntity(e))

	p := &healthProcessor{}
	m.AddEntityProcessor(p)
	require.True(t, p.HasEntity(e.ID()), "registration order of processors vs entities must not matter")
}

func TestManager_ProcessorSetsAreSubsets(t *testing.T) {
	m := NewManager(nil, nil)
	p := &healthProcessor{}
	m.AddEntityProcessor(p)

	for i := 0; i < 4; i++ {
		e := NewEntity("e")
		require.NoError(t, e.AddComponent(&Health{}))
		require.NoError(t, m.AddEntity(e))
	}

	p.Entities().Each(func(e *Entity) {
		require.True(t, m.HasEntity(e))
	})
}

func TestManager_UpdateDrawRegistrationOrder(t *testing.T) {
	m := NewManager(nil, nil)
	journal := []string{}
	m.AddEntityProcessor(&orderProcessor{tag: "p1", journal: &journal})
	m.AddEntityProcessor(&orderProcessor{tag: "p2", journal: &journal})

	require.NoError(t, m.Update(0.016))
	require.NoError(t, m.Draw())
	require.Equal(t, []string{"p1.update", "p2.update", "p1.draw", "p2.draw"}, journal)
}

func TestManager_LifecycleCommandAddsEntity(t *testing.T) {
	queue := messaging.NewQueue()
	m := NewManager(queue, nil)
	e := NewEntity("remote")

	queue.Send(ChannelEntityLifecycle, messaging.NewMessage(CmdAddEntity, "test", e))

	// Not visible before the shift, so not applied either.
	require.NoError(t, m.Update(0.016))
	require.False(t, m.HasEntity(e))

	queue.Shift()
	require.NoError(t, m.Update(0.016))
	require.True(t, m.HasEntity(e))
	require.NotZero(t, e.ID())

	// The added event lands in stand-by; a second shift makes it visible.
	queue.Shift()
	var events []messaging.Message
	queue.Receive(ChannelEntityLifecycle, func(msg messaging.Message) {
		events = append(events, msg)
	})
	require.Len(t, events, 1)
	require.Equal(t, EvEntityAddedToManager, events[0].Type)
	require.Same(t, e, events[0].Data)
}

func TestManager_LifecycleCommandRemovesEntity(t *testing.T) {
	queue := messaging.NewQueue()
	m := NewManager(queue, nil)
	e := NewEntity("remote")
	require.NoError(t, m.AddEntity(e))

	queue.Send(ChannelEntityLifecycle, messaging.NewMessage(CmdRemoveEntity, "test", e))
	queue.Shift()
	require.NoError(t, m.Update(0.016))
	require.False(t, m.HasEntity(e))

	queue.Shift()
	var events []messaging.Message
	queue.Receive(ChannelEntityLifecycle, func(msg messaging.Message) {
		events = append(events, msg)
	})
	require.Len(t, events, 1)
	require.Equal(t, EvEntityRemovedFromManager, events[0].Type)
}

func TestManager_LifecycleBadPayloadIgnored(t *testing.T) {
	queue := messaging.NewQueue()
	m := NewManager(queue, nil)

	queue.Send(ChannelEntityLifecycle, messaging.NewMessage(CmdAddEntity, "test", "not an entity"))
	queue.Shift()
	require.NoError(t, m.Update(0.016))
	require.Equal(t, 0, m.EntityCount())
}
