package main

import (
	"github.com/orbisengine/orbis/internal/core/ecs"
	"github.com/orbisengine/orbis/internal/core/messaging"
	"github.com/orbisengine/orbis/internal/core/observability/log"
)

// MovementProcessor integrates velocity into position for every entity
// carrying both components.
type MovementProcessor struct {
	ecs.BaseProcessor
}

func (p *MovementProcessor) AcceptsEntity(e *ecs.Entity) bool {
	return ecs.Has[Position](e) && ecs.Has[Velocity](e)
}

func (p *MovementProcessor) Update(dt float64) error {
	for _, e := range p.Entities().All() {
		pos, err := ecs.Get[Position](e)
		if err != nil {
			continue
		}
		ecs.MaybeWith(e, func(v *Velocity) {
			pos.X += v.DX * dt
			pos.Y += v.DY * dt
		})
	}
	return nil
}

// CullProcessor despawns entities that drift outside the demo bounds. It
// requests removal through the lifecycle channel rather than holding a
// manager reference; the despawn takes effect on the next tick.
type CullProcessor struct {
	ecs.BaseProcessor
	queue  *messaging.Queue
	bounds float64
	log    log.Log
}

func NewCullProcessor(queue *messaging.Queue, bounds float64, logger log.Log) *CullProcessor {
	return &CullProcessor{queue: queue, bounds: bounds, log: logger}
}

func (p *CullProcessor) AcceptsEntity(e *ecs.Entity) bool {
	return ecs.Has[Position](e)
}

func (p *CullProcessor) Update(_ float64) error {
	for _, e := range p.Entities().All() {
		out := ecs.FromOr(e,
			func(pos *Position) bool {
				return pos.X < -p.bounds || pos.X > p.bounds ||
					pos.Y < -p.bounds || pos.Y > p.bounds
			},
			func() bool { return false })
		if out {
			p.queue.Send(ecs.ChannelEntityLifecycle,
				messaging.NewMessage(ecs.CmdRemoveEntity, "cull", e))
			p.log.Debug("culling entity", log.Uint64("id", uint64(e.ID())))
		}
	}
	return nil
}
