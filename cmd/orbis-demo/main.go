package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/orbisengine/orbis/internal/core/ecs"
	"github.com/orbisengine/orbis/internal/core/game"
	"github.com/orbisengine/orbis/internal/core/messaging"
	"github.com/orbisengine/orbis/internal/core/observability/log"
	"github.com/orbisengine/orbis/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	profiling := flag.Bool("profile", false, "write a CPU profile to the working directory")
	entities := flag.Int("entities", 100, "number of demo entities to spawn")
	flag.Parse()

	if *profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	cfg := game.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel))

	queue := messaging.NewQueue()
	manager := ecs.NewManager(queue, logger)
	manager.AddEntityProcessor(&MovementProcessor{})
	manager.AddEntityProcessor(NewCullProcessor(queue, 1000, logger))

	// Spawn through the lifecycle channel; the entities appear on the
	// first tick's command drain.
	for i := 0; i < *entities; i++ {
		e := ecs.NewEntity(fmt.Sprintf("mote-%d", i))
		pos := ecs.Attach[Position](e)
		pos.X = rand.Float64()*200 - 100
		pos.Y = rand.Float64()*200 - 100
		vel := ecs.Attach[Velocity](e)
		vel.DX = rand.Float64()*20 - 10
		vel.DY = rand.Float64()*20 - 10
		queue.Send(ecs.ChannelEntityLifecycle,
			messaging.NewMessage(ecs.CmdAddEntity, "demo", e))
	}

	loop := game.NewLoop(cfg, manager, queue, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(ctx) })
	if cfg.Inspector.Enabled {
		inspector := server.NewInspector(cfg.Inspector, func() server.Snapshot {
			s := loop.Stats()
			return server.Snapshot{Tick: s.Tick, Entities: s.Entities, Processors: s.Processors}
		}, logger)
		g.Go(func() error { return inspector.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("engine stopped with error", log.Error(err))
		os.Exit(1)
	}
}
