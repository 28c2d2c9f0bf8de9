package ecs

import (
	"hash/fnv"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ArchetypeID identifies a table by a pure function of its sorted
// component-type set: FNV-1a over the sorted ComponentTypeIDs (spec §3).
type ArchetypeID uint64

// hashArchetypeID derives an ArchetypeID from an already-sorted slice of
// component types.
func hashArchetypeID(sortedTypes []ComponentTypeID) ArchetypeID {
	h := fnv.New64a()
	var buf [4]byte
	for _, t := range sortedTypes {
		buf[0] = byte(t)
		buf[1] = byte(t >> 8)
		buf[2] = byte(t >> 16)
		buf[3] = byte(t >> 24)
		_, _ = h.Write(buf[:])
	}
	return ArchetypeID(h.Sum64())
}

// sortedTypeSet returns a new, sorted, de-duplicated copy of types.
func sortedTypeSet(types []ComponentTypeID) []ComponentTypeID {
	out := append([]ComponentTypeID(nil), types...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Archetype is the columnar table for every live entity sharing one exact
// component-type set. Row index is the position of the entity in
// `entities`; every column holds its per-row component value at that same
// row index.
type Archetype struct {
	id             ArchetypeID
	componentTypes []ComponentTypeID
	columns        map[ComponentTypeID]componentColumn
	entities       []EntityID
	entityToRow    *intmap.Map[uint32, uint32]

	addEdges    map[ComponentTypeID]ArchetypeID
	removeEdges map[ComponentTypeID]ArchetypeID

	version uint64
}

// newArchetype builds the (empty) table for a sorted component-type set.
// The registry supplies a column factory per type.
func newArchetype(types []ComponentTypeID, registry *TypeRegistry) *Archetype {
	a := &Archetype{
		id:             hashArchetypeID(types),
		componentTypes: types,
		columns:        make(map[ComponentTypeID]componentColumn, len(types)),
		entityToRow:    intmap.New[uint32, uint32](64),
		addEdges:       make(map[ComponentTypeID]ArchetypeID),
		removeEdges:    make(map[ComponentTypeID]ArchetypeID),
	}
	for _, t := range types {
		a.columns[t] = registry.newColumn(t)
	}
	return a
}

// ID returns this archetype's identity, equal to fnv1a(sort(componentTypes)).
func (a *Archetype) ID() ArchetypeID { return a.id }

// ComponentTypes returns the archetype's sorted component-type set.
func (a *Archetype) ComponentTypes() []ComponentTypeID { return a.componentTypes }

// Version is the monotonic counter advanced by every structural mutation;
// the sole staleness signal query caches consume.
func (a *Archetype) Version() uint64 { return a.version }

// Size returns the number of live rows (entities) in this archetype.
func (a *Archetype) Size() int { return len(a.entities) }

// Entities returns a view of the entity ids, in row order. Callers must not
// retain this past the next structural mutation.
func (a *Archetype) Entities() []EntityID { return a.entities }

// HasComponentType reports whether t is part of this archetype's type set.
func (a *Archetype) HasComponentType(t ComponentTypeID) bool {
	_, ok := a.columns[t]
	return ok
}

// Matches reports whether this archetype's type set is a superset of
// required.
func (a *Archetype) Matches(required []ComponentTypeID) bool {
	for _, t := range required {
		if !a.HasComponentType(t) {
			return false
		}
	}
	return true
}

// Add appends a new row for entity, consuming components: every type in
// componentTypes must have an entry in components, and entity must not
// already be present. Returns an error otherwise.
func (a *Archetype) Add(entity EntityID, components map[ComponentTypeID]any) error {
	if _, exists := a.entityToRow.Get(uint32(entity)); exists {
		return errDuplicateEntity
	}
	for _, t := range a.componentTypes {
		if _, ok := components[t]; !ok {
			return errMissingComponent
		}
	}

	row := -1
	for _, t := range a.componentTypes {
		r := a.columns[t].Append(components[t])
		row = r
	}
	if row == -1 {
		// No-component (empty) archetype: row tracks purely via `entities`.
		row = len(a.entities)
	}

	a.entities = append(a.entities, entity)
	a.entityToRow.Put(uint32(entity), uint32(row))
	a.version++
	return nil
}

// removalEffect reports the side effect swap-remove has on a row other
// than the one being removed: the last row gets moved into the vacated
// slot, so whoever indexes rows outside the archetype (World.entityIndex)
// must be told about the move.
type removalEffect struct {
	Moved  bool
	Entity EntityID
	NewRow int
}

// Remove swap-removes entity's row, discarding its component values.
// Returns false if entity is not present.
func (a *Archetype) Remove(entity EntityID) (removalEffect, bool) {
	row, ok := a.entityToRow.Get(uint32(entity))
	if !ok {
		return removalEffect{}, false
	}
	eff := a.removeRow(int(row))
	a.version++
	return eff, true
}

// Extract swap-removes entity's row like Remove, but hands back the row's
// component values instead of discarding them — used to carry a row across
// an archetype move without re-copying from scratch.
func (a *Archetype) Extract(entity EntityID) (map[ComponentTypeID]any, removalEffect, bool) {
	row, ok := a.entityToRow.Get(uint32(entity))
	if !ok {
		return nil, removalEffect{}, false
	}

	out := make(map[ComponentTypeID]any, len(a.componentTypes))
	for _, t := range a.componentTypes {
		out[t] = a.columns[t].Extract(int(row))
	}
	eff := a.deindexRow(entity, int(row))
	a.version++
	return out, eff, true
}

// removeRow swap-removes row from every column and from the entity index,
// discarding the row's values.
func (a *Archetype) removeRow(row int) removalEffect {
	for _, t := range a.componentTypes {
		a.columns[t].SwapRemove(row)
	}
	entity := a.entities[row]
	return a.deindexRow(entity, row)
}

// deindexRow removes row from `entities`/`entityToRow` by swapping the last
// entity into its place, mirroring the swap-remove already applied to the
// columns, and reports whether that swap moved another live entity.
func (a *Archetype) deindexRow(entity EntityID, row int) removalEffect {
	last := len(a.entities) - 1
	movedEntity := a.entities[last]

	var eff removalEffect
	if row != last {
		a.entities[row] = movedEntity
		a.entityToRow.Put(uint32(movedEntity), uint32(row))
		eff = removalEffect{Moved: true, Entity: movedEntity, NewRow: row}
	}
	a.entities = a.entities[:last]
	a.entityToRow.Del(uint32(entity))
	return eff
}

// Clear empties every column and the entity index.
func (a *Archetype) Clear() {
	for _, t := range a.componentTypes {
		a.columns[t].Clear()
	}
	a.entities = a.entities[:0]
	a.entityToRow = intmap.New[uint32, uint32](64)
	a.version++
}

// GetComponent returns a pointer to entity's value of component type t, or
// nil if entity is absent from this archetype or t is not part of its type
// set. The pointer is valid only until the next structural mutation of this
// archetype.
func (a *Archetype) GetComponent(entity EntityID, t ComponentTypeID) (unsafe.Pointer, bool) {
	row, ok := a.entityToRow.Get(uint32(entity))
	if !ok {
		return nil, false
	}
	col, ok := a.columns[t]
	if !ok {
		return nil, false
	}
	return col.At(int(row)), true
}

// GetComponentArray returns the type-erased column for t, or nil if this
// archetype doesn't carry that type.
func (a *Archetype) GetComponentArray(t ComponentTypeID) componentColumn {
	return a.columns[t]
}

// SetAddEdge caches the archetype reached by adding component type t.
func (a *Archetype) SetAddEdge(t ComponentTypeID, target ArchetypeID) {
	a.addEdges[t] = target
}

// SetRemoveEdge caches the archetype reached by removing component type t.
func (a *Archetype) SetRemoveEdge(t ComponentTypeID, target ArchetypeID) {
	a.removeEdges[t] = target
}

// GetAddEdge returns the cached "add t" transition, if any.
func (a *Archetype) GetAddEdge(t ComponentTypeID) (ArchetypeID, bool) {
	id, ok := a.addEdges[t]
	return id, ok
}

// GetRemoveEdge returns the cached "remove t" transition, if any.
func (a *Archetype) GetRemoveEdge(t ComponentTypeID) (ArchetypeID, bool) {
	id, ok := a.removeEdges[t]
	return id, ok
}
