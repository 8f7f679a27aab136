package main

import "github.com/orbisengine/orbis/internal/core/ecs"

var (
	positionType = ecs.ComponentType("demo.position")
	velocityType = ecs.ComponentType("demo.velocity")
)

// Position places an entity on the demo plane.
type Position struct {
	X, Y float64
}

func (*Position) TypeID() ecs.ComponentTypeID { return positionType }

// Velocity moves an entity, units per second.
type Velocity struct {
	DX, DY float64
}

func (*Velocity) TypeID() ecs.ComponentTypeID { return velocityType }

func init() {
	_ = ecs.RegisterComponent(positionType, func() ecs.Component { return &Position{} })
	_ = ecs.RegisterComponent(velocityType, func() ecs.Component { return &Velocity{} })
}
