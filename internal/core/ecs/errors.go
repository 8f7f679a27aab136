package ecs

import "errors"

// Core ECS errors
var (
	// Lookup errors

	ErrEntityNotFound    = errors.New("entity not found")
	ErrComponentNotFound = errors.New("component not found")

	// Argument errors

	ErrNilEntity    = errors.New("entity is nil")
	ErrNilComponent = errors.New("component is nil")

	// Instantiation errors

	ErrComponentNotRegistered = errors.New("component type not registered")
	ErrNilComponentFactory    = errors.New("component factory is nil")
)
