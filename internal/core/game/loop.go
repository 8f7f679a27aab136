package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/orbisengine/orbis/internal/core/ecs"
	"github.com/orbisengine/orbis/internal/core/messaging"
	"github.com/orbisengine/orbis/internal/core/observability/log"
)

// Loop drives the simulation at a fixed timestep. Every tick it shifts the
// message queue's buffers, updates the manager (which drains lifecycle
// commands first), then draws. All of that happens on the goroutine that
// called Run; the core stays single-threaded.
type Loop struct {
	cfg     Config
	manager *ecs.Manager
	queue   *messaging.Queue
	log     log.Log

	tick  atomic.Int64
	stats atomic.Pointer[Stats]
}

// Stats is a read-only snapshot of the simulation, published once per tick
// for observers running off the simulation goroutine.
type Stats struct {
	Tick       int64
	Entities   int
	Processors int
}

// NewLoop creates a loop. logger may be nil; the process logger is used
// then.
func NewLoop(cfg Config, manager *ecs.Manager, queue *messaging.Queue, logger log.Log) *Loop {
	if logger == nil {
		logger = log.Provide()
	}
	return &Loop{
		cfg:     cfg,
		manager: manager,
		queue:   queue,
		log:     logger,
	}
}

// Run initializes the processors, ticks at the configured rate until ctx
// is cancelled, then cleans the processors up. Per-tick processor errors
// are logged, not fatal: whether an error should stop the game is the
// game's call, and it can make it from inside a processor.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.manager.InitializeEntityProcessors(); err != nil {
		return err
	}
	defer func() {
		if err := l.manager.CleanupEntityProcessors(); err != nil {
			l.log.Error("processor cleanup failed", log.Error(err))
		}
	}()

	interval := l.cfg.TickInterval()
	l.log.Info("loop started",
		log.Float64("tick_rate", l.cfg.TickRate),
		log.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", log.Int64("ticks", l.tick.Load()))
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				l.log.Error("tick failed", log.Int64("tick", l.tick.Load()), log.Error(err))
			}
		}
	}
}

// Step advances exactly one tick: shift the queue, update, draw. Exposed so
// tests and tools can drive the simulation without wall-clock timing.
func (l *Loop) Step() error {
	if l.queue != nil {
		l.queue.Shift()
	}
	dt := 1 / l.cfg.TickRate
	err := errors.Join(l.manager.Update(dt), l.manager.Draw())
	tick := l.tick.Add(1)
	l.stats.Store(&Stats{
		Tick:       tick,
		Entities:   l.manager.EntityCount(),
		Processors: l.manager.ProcessorCount(),
	})
	return err
}

// Stats returns the latest published snapshot. Safe to call from any
// goroutine.
func (l *Loop) Stats() Stats {
	if s := l.stats.Load(); s != nil {
		return *s
	}
	return Stats{}
}

// Tick returns the number of completed ticks. Safe to read from other
// goroutines (the inspector polls it).
func (l *Loop) Tick() int64 { return l.tick.Load() }

// Manager returns the loop's entity manager.
func (l *Loop) Manager() *ecs.Manager { return l.manager }
