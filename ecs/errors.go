package ecs

import "errors"

// Archetype-level errors (spec §4.3).
var (
	errDuplicateEntity  = errors.New("ecs: entity already present in archetype")
	errMissingComponent = errors.New("ecs: missing required component type")
)

// World-level error values (spec §4.4, §7). No World operation returns
// them: Add, Remove, Get, Has and Despawn report each of these conditions
// by returning false.
var (
	// ErrNotAlive names the condition of an operation targeting a stale or
	// unknown entity handle.
	ErrNotAlive = errors.New("ecs: entity is not alive")
	// ErrNotRegistered names the condition of an operation naming a
	// component type that was never registered with the world's type
	// registry.
	ErrNotRegistered = errors.New("ecs: component type not registered")
	// ErrDuplicateComponent names the condition of Add[T] targeting an
	// entity that already carries an instance of T.
	ErrDuplicateComponent = errors.New("ecs: entity already has component")
)

// Scheduler errors (spec §4.7, §7).
var (
	ErrDuplicateSystem     = errors.New("ecs: duplicate system name")
	ErrUnknownStage        = errors.New("ecs: unknown stage")
	ErrUnknownDependency   = errors.New("ecs: depends_on names a system outside this stage")
	ErrCircularDependency  = errors.New("ecs: circular dependency between systems")
	ErrSystemNotRegistered = errors.New("ecs: system not registered")
)

// Plugin manager errors (spec §4.8, §7).
var (
	ErrDuplicatePlugin      = errors.New("ecs: duplicate plugin name")
	ErrPluginDependency     = errors.New("ecs: plugin dependency not yet added")
	ErrPluginNotFound       = errors.New("ecs: plugin not found")
	ErrAlreadyBuilt         = errors.New("ecs: plugin manager already built")
	ErrMutateAfterBuild     = errors.New("ecs: cannot modify plugin manager after build")
)
