//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/orbisengine/orbis/internal/core/ecs"
	"github.com/orbisengine/orbis/internal/core/messaging"
	"github.com/orbisengine/orbis/internal/core/observability/log"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

func ProvideManager() *ecs.Manager {
	wire.Build(messaging.NewQueue, wire.Bind(new(log.Log), new(*log.Logger)), log.Provide, ecs.NewManager)
	return nil
}
