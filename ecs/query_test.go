package ecs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestWorldQueryFilteredByWithAndWithoutScenario(t *testing.T) {
	// spec.md §8 scenario 3.
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	healthT := ecs.Register[Health](w)
	playerT := ecs.Register[Player](w)
	enemyT := ecs.Register[Enemy](w)

	_, ok := w.CreateWithComponents([]ecs.ComponentData{
		{Type: posT, Value: Position{}},
		{Type: healthT, Value: Health{Current: 100, Max: 100}},
		{Type: playerT, Value: Player{}},
	})
	assert.True(t, ok)

	for i := 0; i < 100; i++ {
		_, ok := w.CreateWithComponents([]ecs.ComponentData{
			{Type: posT, Value: Position{}},
			{Type: healthT, Value: Health{Current: 100, Max: 100}},
			{Type: enemyT, Value: Enemy{}},
		})
		assert.True(t, ok)
	}

	required := []ecs.ComponentTypeID{posT, healthT}

	players := w.Query(required, ecs.With(playerT), ecs.Without(enemyT))
	assert.Len(t, players, 1)

	enemies := w.Query(required, ecs.With(enemyT))
	assert.Len(t, enemies, 100)
}

func TestQuerySystemCacheConsistencyScenario(t *testing.T) {
	// spec.md §8 scenario 5.
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)

	q := ecs.NewQuerySystem([]ecs.ComponentTypeID{posT, velT})

	for i := 0; i < 102; i++ {
		_, ok := w.CreateWithComponents([]ecs.ComponentData{
			{Type: posT, Value: Position{}},
			{Type: velT, Value: Velocity{}},
		})
		assert.True(t, ok)
	}

	results := q.Query(w)
	assert.Len(t, results, 102)
	rebuildsAfterFirst := q.RebuildCount()
	assert.Equal(t, uint64(1), rebuildsAfterFirst)

	// Querying again with no intervening structural change must not
	// rebuild and must return the same set.
	again := q.Query(w)
	assert.Len(t, again, 102)
	assert.Equal(t, rebuildsAfterFirst, q.RebuildCount())

	for i := 0; i < 5; i++ {
		_, ok := w.CreateWithComponents([]ecs.ComponentData{
			{Type: posT, Value: Position{}},
			{Type: velT, Value: Velocity{}},
		})
		assert.True(t, ok)
	}

	updated := q.Query(w)
	assert.Len(t, updated, 107)
	assert.Greater(t, q.RebuildCount(), rebuildsAfterFirst)
}

func TestQuerySystemChunkingScenario(t *testing.T) {
	// spec.md §8 scenario 6: 60 matching entities, chunk_size 25 -> chunks
	// of 25, 25, 10.
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)

	for i := 0; i < 60; i++ {
		_, ok := w.CreateWithComponents([]ecs.ComponentData{
			{Type: posT, Value: Position{}},
			{Type: velT, Value: Velocity{}},
		})
		assert.True(t, ok)
	}

	q := ecs.NewQuerySystem([]ecs.ComponentTypeID{posT, velT})
	chunks := q.QueryChunked(w, 25)

	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Results, 25)
	assert.Len(t, chunks[1].Results, 25)
	assert.Len(t, chunks[2].Results, 10)
}

func TestQuerySystemCountMatchesQueryLength(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	for i := 0; i < 7; i++ {
		w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{}}})
	}
	q := ecs.NewQuerySystem([]ecs.ComponentTypeID{posT})
	assert.Equal(t, 7, q.Count(w))
	assert.Len(t, q.Query(w), 7)
}

func TestQuerySystemMarkDirtyForcesRebuild(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	q := ecs.NewQuerySystem([]ecs.ComponentTypeID{posT})
	q.Query(w)
	before := q.RebuildCount()

	q.MarkDirty()
	q.Query(w)
	assert.Greater(t, q.RebuildCount(), before)
}

func TestGetMissingComponentReturnsFalseNotPanic(t *testing.T) {
	w := ecs.NewWorld()
	h := w.Create()
	_, ok := ecs.Get[Position](w, h)
	assert.False(t, ok)
}

func ExampleWorld_Query() {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	healthT := ecs.Register[Health](w)

	w.CreateWithComponents([]ecs.ComponentData{
		{Type: posT, Value: Position{X: 1, Y: 2}},
		{Type: healthT, Value: Health{Current: 10, Max: 10}},
	})

	results := w.Query([]ecs.ComponentTypeID{posT, healthT})
	for _, r := range results {
		pos := ecs.ReadComponent[Position](r, posT)
		fmt.Printf("%.0f,%.0f\n", pos.X, pos.Y)
	}
	// Output: 1,2
}
