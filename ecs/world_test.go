package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestWorldCreateSpawnsIntoEmptyArchetype(t *testing.T) {
	w := ecs.NewWorld()
	h := w.Create()
	assert.True(t, w.IsAlive(h))
	assert.Equal(t, 1, w.EntityCount())
	assert.Equal(t, 1, w.ArchetypeCount(), "the empty archetype is seeded at NewWorld")
}

func TestWorldBulkCreationScenario(t *testing.T) {
	// spec.md §8 scenario 2: one player entity plus 100 enemies sharing
	// {Position, Velocity, Health} yields 101 entities across 2 populated
	// archetypes.
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)
	healthT := ecs.Register[Health](w)
	playerT := ecs.Register[Player](w)
	enemyT := ecs.Register[Enemy](w)

	_, ok := w.CreateWithComponents([]ecs.ComponentData{
		{Type: posT, Value: Position{}},
		{Type: velT, Value: Velocity{}},
		{Type: healthT, Value: Health{Current: 100, Max: 100}},
		{Type: playerT, Value: Player{}},
	})
	assert.True(t, ok)

	for i := 0; i < 100; i++ {
		_, ok := w.CreateWithComponents([]ecs.ComponentData{
			{Type: posT, Value: Position{}},
			{Type: velT, Value: Velocity{}},
			{Type: healthT, Value: Health{Current: 100, Max: 100}},
			{Type: enemyT, Value: Enemy{}},
		})
		assert.True(t, ok)
	}

	assert.Equal(t, 101, w.EntityCount())
	// The pre-seeded empty archetype plus the two populated ones.
	assert.Equal(t, 3, w.ArchetypeCount())
}

func TestWorldCreateWithComponentsFailsOnUnregisteredType(t *testing.T) {
	w := ecs.NewWorld()
	_, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: 999, Value: Position{}}})
	assert.False(t, ok)
	assert.Equal(t, 0, w.EntityCount())
}

func TestWorldArchetypeGraphTransitionScenario(t *testing.T) {
	// spec.md §8 scenario 4.
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)

	h := w.Create()
	assert.Equal(t, 1, w.ArchetypeCount())

	assert.True(t, ecs.Add(w, h, Position{X: 1, Y: 2}))
	assert.Equal(t, 2, w.ArchetypeCount())

	assert.True(t, ecs.Add(w, h, Velocity{DX: 1, DY: 1}))
	assert.Equal(t, 3, w.ArchetypeCount())

	assert.True(t, ecs.Remove[Position](w, h))
	assert.Equal(t, 4, w.ArchetypeCount())

	assert.True(t, ecs.Add(w, h, Position{X: 3, Y: 4}))
	assert.Equal(t, 4, w.ArchetypeCount(), "re-adding Position must reuse the cached edge, not create a new archetype")

	results := w.Query([]ecs.ComponentTypeID{posT, velT})
	assert.Len(t, results, 1)
	assert.Equal(t, h, results[0].Entity)

	pos := ecs.ReadComponent[Position](results[0], posT)
	assert.Equal(t, float32(3), pos.X)
}

func TestWorldAddFailsWhenComponentAlreadyPresent(t *testing.T) {
	w := ecs.NewWorld()
	ecs.Register[Position](w)
	h := w.Create()
	assert.True(t, ecs.Add(w, h, Position{X: 1}))
	assert.False(t, ecs.Add(w, h, Position{X: 2}))

	pos, ok := ecs.Get[Position](w, h)
	assert.True(t, ok)
	assert.Equal(t, float32(1), pos.X, "a rejected Add must leave the existing component untouched")
}

func TestWorldRemoveFailsWhenComponentAbsent(t *testing.T) {
	w := ecs.NewWorld()
	ecs.Register[Position](w)
	h := w.Create()
	assert.False(t, ecs.Remove[Position](w, h))
}

func TestWorldAddRemoveRoundTripReturnsToOriginalArchetype(t *testing.T) {
	w := ecs.NewWorld()
	ecs.Register[Position](w)
	h := w.Create()
	_ = ecs.Add(w, h, Position{X: 5})
	before := w.ArchetypeCount()

	assert.True(t, ecs.Remove[Position](w, h))
	assert.False(t, ecs.Has[Position](w, h))
	assert.Equal(t, before, w.ArchetypeCount(), "round-tripping add then remove must not create a new archetype")
}

func TestWorldDespawnInvalidatesHandleAndFutureOpsFail(t *testing.T) {
	w := ecs.NewWorld()
	ecs.Register[Position](w)
	ecs.Register[Velocity](w)
	h := w.Create()
	_ = ecs.Add(w, h, Position{X: 1})

	assert.True(t, w.Despawn(h))
	assert.False(t, w.IsAlive(h))
	assert.False(t, w.Despawn(h), "despawning an already-stale handle must fail")

	_, ok := ecs.Get[Position](w, h)
	assert.False(t, ok)
	assert.False(t, ecs.Has[Position](w, h))
	assert.False(t, ecs.Add(w, h, Velocity{}))
	assert.False(t, ecs.Remove[Position](w, h))
}

func TestWorldEntityCountMatchesAliveEntities(t *testing.T) {
	w := ecs.NewWorld()
	var handles []ecs.EntityHandle
	for i := 0; i < 10; i++ {
		handles = append(handles, w.Create())
	}
	for i := 0; i < 4; i++ {
		w.Despawn(handles[i])
	}
	assert.Equal(t, 6, w.EntityCount())
}

func TestWorldClearResetsEntitiesAndArchetypesButKeepsRegistry(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	h, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{X: 1}}})
	assert.True(t, ok)

	w.Clear()

	assert.Equal(t, 0, w.EntityCount())
	assert.Equal(t, 1, w.ArchetypeCount())
	assert.False(t, w.IsAlive(h))

	// The type registry survives Clear: registering Position again must
	// still yield the same type id.
	posT2 := ecs.Register[Position](w)
	assert.Equal(t, posT, posT2)
}
