package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestEntityManagerCreateAssignsSequentialIDs(t *testing.T) {
	m := ecs.NewEntityManager()
	a := m.Create()
	b := m.Create()
	assert.Equal(t, ecs.EntityID(0), a.ID())
	assert.Equal(t, ecs.EntityID(1), b.ID())
	assert.Equal(t, 2, m.AliveCount())
}

func TestEntityManagerDestroyBumpsGenerationAndRecycles(t *testing.T) {
	m := ecs.NewEntityManager()
	a := m.Create()
	assert.True(t, m.Destroy(a))
	assert.False(t, m.IsAlive(a))
	assert.Equal(t, 0, m.AliveCount())

	b := m.Create()
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.True(t, m.IsAlive(b))
	assert.False(t, m.IsAlive(a), "old handle must stay invalid after id reuse")
}

func TestEntityManagerDestroyTwiceFails(t *testing.T) {
	m := ecs.NewEntityManager()
	a := m.Create()
	assert.True(t, m.Destroy(a))
	assert.False(t, m.Destroy(a))
}

func TestEntityManagerIsAliveIsPure(t *testing.T) {
	m := ecs.NewEntityManager()
	a := m.Create()
	before := m.AliveCount()
	for i := 0; i < 5; i++ {
		_ = m.IsAlive(a)
	}
	assert.Equal(t, before, m.AliveCount())
}

func TestEntityManagerUnknownHandleIsNotAlive(t *testing.T) {
	m := ecs.NewEntityManager()
	assert.False(t, m.IsAlive(ecs.NewEntityHandle(99, 0)))
}
