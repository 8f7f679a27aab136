package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orbisengine/orbis/internal/core/ecs"
	"github.com/orbisengine/orbis/internal/core/messaging"
)

var pulseType = ecs.ComponentType("game-test.pulse")

type Pulse struct{ Beats int }

func (*Pulse) TypeID() ecs.ComponentTypeID { return pulseType }

// pulseProcessor counts ticks and beats every pulse-carrying entity.
type pulseProcessor struct {
	ecs.BaseProcessor
	updates     int
	draws       int
	initialized bool
	cleaned     bool
}

func (p *pulseProcessor) AcceptsEntity(e *ecs.Entity) bool { return ecs.Has[Pulse](e) }

func (p *pulseProcessor) Initialize() error { p.initialized = true; return nil }
func (p *pulseProcessor) Cleanup() error    { p.cleaned = true; return nil }

func (p *pulseProcessor) Update(_ float64) error {
	p.updates++
	for _, e := range p.Entities().All() {
		ecs.MaybeWith(e, func(pu *Pulse) { pu.Beats++ })
	}
	return nil
}

func (p *pulseProcessor) Draw() error { p.draws++; return nil }

func testLoop(t *testing.T) (*Loop, *ecs.Manager, *messaging.Queue, *pulseProcessor) {
	t.Helper()
	queue := messaging.NewQueue()
	manager := ecs.NewManager(queue, nil)
	proc := &pulseProcessor{}
	manager.AddEntityProcessor(proc)
	return NewLoop(DefaultConfig(), manager, queue, nil), manager, queue, proc
}

func TestLoop_StepShiftsThenUpdates(t *testing.T) {
	loop, manager, queue, proc := testLoop(t)

	e := ecs.NewEntity("pulse")
	ecs.Attach[Pulse](e)
	queue.Send(ecs.ChannelEntityLifecycle, messaging.NewMessage(ecs.CmdAddEntity, "test", e))

	// The command was sent before the tick, so the shift at the top of
	// Step makes it visible to the same tick's drain.
	require.NoError(t, loop.Step())
	require.True(t, manager.HasEntity(e))
	require.Equal(t, 1, proc.updates)
	require.Equal(t, 1, proc.draws)
	require.Equal(t, int64(1), loop.Tick())

	p, err := ecs.Get[Pulse](e)
	require.NoError(t, err)
	require.Equal(t, 1, p.Beats)
}

func TestLoop_StatsSnapshot(t *testing.T) {
	loop, manager, _, _ := testLoop(t)
	require.Equal(t, Stats{}, loop.Stats(), "no snapshot before the first tick")

	e := ecs.NewEntity("pulse")
	ecs.Attach[Pulse](e)
	require.NoError(t, manager.AddEntity(e))

	require.NoError(t, loop.Step())
	stats := loop.Stats()
	require.Equal(t, int64(1), stats.Tick)
	require.Equal(t, 1, stats.Entities)
	require.Equal(t, 1, stats.Processors)
}

func TestLoop_RunInitializesAndCleansUp(t *testing.T) {
	queue := messaging.NewQueue()
	manager := ecs.NewManager(queue, nil)
	proc := &pulseProcessor{}
	manager.AddEntityProcessor(proc)

	cfg := DefaultConfig()
	cfg.TickRate = 500 // keep the test fast
	loop := NewLoop(cfg, manager, queue, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, loop.Run(ctx))

	require.True(t, proc.initialized)
	require.True(t, proc.cleaned)
	require.Greater(t, proc.updates, 0)
	require.Equal(t, int64(proc.updates), loop.Tick())
}
