package ecs_test

import (
	"encoding/binary"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestArchetypeIDIsFNV1aOfSortedTypes(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)

	h1, ok := w.CreateWithComponents([]ecs.ComponentData{
		{Type: velT, Value: Velocity{}},
		{Type: posT, Value: Position{}},
	})
	assert.True(t, ok)

	h2, ok := w.CreateWithComponents([]ecs.ComponentData{
		{Type: posT, Value: Position{}},
		{Type: velT, Value: Velocity{}},
	})
	assert.True(t, ok)

	a1, _, ok1 := locateFor(w, h1, posT)
	a2, _, ok2 := locateFor(w, h2, posT)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, a1, a2, "component insertion order must not affect archetype identity")

	// The id is FNV-1a 64 over the sorted type ids, each written as 4
	// little-endian bytes.
	hasher := fnv.New64a()
	for _, ct := range []ecs.ComponentTypeID{posT, velT} {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(ct))
		_, _ = hasher.Write(buf[:])
	}
	assert.Equal(t, ecs.ArchetypeID(hasher.Sum64()), a1)
}

// locateFor is a small helper that finds the archetype an entity with
// component t currently lives in, by scanning w.Archetypes().
func locateFor(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID) (ecs.ArchetypeID, int, bool) {
	for _, a := range w.Archetypes() {
		for row, e := range a.Entities() {
			if w.HandleOf(e) == h && a.HasComponentType(t) {
				return a.ID(), row, true
			}
		}
	}
	return 0, 0, false
}

func TestArchetypeAddRejectsDuplicateEntity(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	h, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{X: 1}}})
	assert.True(t, ok)
	assert.True(t, w.IsAlive(h))

	var arch *ecs.Archetype
	for _, a := range w.Archetypes() {
		if a.HasComponentType(posT) {
			arch = a
		}
	}
	if assert.NotNil(t, arch) {
		err := arch.Add(h.ID(), map[ecs.ComponentTypeID]any{posT: Position{X: 2}})
		assert.Error(t, err, "adding an entity already present in the archetype must fail")
		assert.Equal(t, 1, arch.Size())
	}
}

func TestArchetypeSwapRemoveReindexesMovedEntity(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)

	h1, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{X: 1}}})
	assert.True(t, ok)
	h2, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{X: 2}}})
	assert.True(t, ok)
	h3, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{X: 3}}})
	assert.True(t, ok)

	// Despawning h1 (row 0) swap-removes h3 (the last row) into row 0. The
	// world's entityIndex must follow that move so Get still resolves h3
	// correctly afterward.
	assert.True(t, w.Despawn(h1))

	assert.False(t, w.IsAlive(h1))
	assert.True(t, w.IsAlive(h2))
	assert.True(t, w.IsAlive(h3))

	p2, ok := ecs.Get[Position](w, h2)
	assert.True(t, ok)
	assert.Equal(t, float32(2), p2.X)

	p3, ok := ecs.Get[Position](w, h3)
	assert.True(t, ok)
	assert.Equal(t, float32(3), p3.X, "entity swap-moved into the vacated row must still resolve to its own component data")
}

func TestArchetypeVersionIncreasesOnMutation(t *testing.T) {
	w := ecs.NewWorld()
	posT := ecs.Register[Position](w)
	ecs.Register[Velocity](w)

	h, ok := w.CreateWithComponents([]ecs.ComponentData{{Type: posT, Value: Position{}}})
	assert.True(t, ok)

	var before uint64
	for _, a := range w.Archetypes() {
		if a.HasComponentType(posT) && len(a.ComponentTypes()) == 1 {
			before = a.Version()
		}
	}

	assert.True(t, ecs.Add(w, h, Velocity{DX: 1}))

	var after uint64
	for _, a := range w.Archetypes() {
		if a.HasComponentType(posT) && len(a.ComponentTypes()) == 1 {
			after = a.Version()
		}
	}
	assert.Greater(t, after, before, "archetype version must strictly increase on a structural mutation")
}
