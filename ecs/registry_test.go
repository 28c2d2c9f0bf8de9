package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestRegisterTypeAssignsSequentialIDsInRegistrationOrder(t *testing.T) {
	r := ecs.NewTypeRegistry()

	posT := ecs.RegisterType[Position](r)
	velT := ecs.RegisterType[Velocity](r)
	healthT := ecs.RegisterType[Health](r)
	enemyT := ecs.RegisterType[Enemy](r)
	playerT := ecs.RegisterType[Player](r)

	assert.Equal(t, ecs.ComponentTypeID(0), posT)
	assert.Equal(t, ecs.ComponentTypeID(1), velT)
	assert.Equal(t, ecs.ComponentTypeID(2), healthT)
	assert.Equal(t, ecs.ComponentTypeID(3), enemyT)
	assert.Equal(t, ecs.ComponentTypeID(4), playerT)
}

func TestRegisterTypeIsIdempotent(t *testing.T) {
	r := ecs.NewTypeRegistry()
	first := ecs.RegisterType[Position](r)
	second := ecs.RegisterType[Position](r)
	assert.Equal(t, first, second)
}

func TestTypeIDReportsUnregisteredType(t *testing.T) {
	r := ecs.NewTypeRegistry()
	_, ok := ecs.TypeID[Position](r)
	assert.False(t, ok)

	ecs.RegisterType[Position](r)
	id, ok := ecs.TypeID[Position](r)
	assert.True(t, ok)
	assert.Equal(t, ecs.ComponentTypeID(0), id)
}

func TestMustTypeIDPanicsOnUnregistered(t *testing.T) {
	r := ecs.NewTypeRegistry()
	assert.Panics(t, func() {
		ecs.MustTypeID[Position](r)
	})
}
