package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// ComponentData bundles a registered component type with its value, the
// currency CreateWithComponents and the Component helper use to hand
// heterogeneous component values to the world.
type ComponentData struct {
	Type  ComponentTypeID
	Value any
}

// entityLocation is the World's authoritative record of where a live
// entity's row lives. It is kept in sync with the owning archetype's own
// entityToRow at every mutation (spec §3's denormalisation invariant).
type entityLocation struct {
	archetype ArchetypeID
	row       uint32
}

// World owns the entity manager, the type registry, every archetype table,
// and the entity→location index. It is the archetype graph described in
// spec §2/§4.4: archetypes are created on demand and kept until Clear, and
// add/remove transitions between them are memoised as edges on the
// archetypes themselves.
type World struct {
	entities    *EntityManager
	registry    *TypeRegistry
	archetypes  map[ArchetypeID]*Archetype
	entityIndex *intmap.Map[uint32, entityLocation]
}

// NewWorld creates an empty world, pre-seeded with the empty archetype so
// component-less entities always have somewhere to live.
func NewWorld() *World {
	w := &World{
		registry:    NewTypeRegistry(),
		archetypes:  make(map[ArchetypeID]*Archetype),
		entities:    NewEntityManager(),
		entityIndex: intmap.New[uint32, entityLocation](256),
	}
	w.ensureArchetype(nil)
	return w
}

// Register assigns (or returns) T's ComponentTypeID.
func Register[T any](w *World) ComponentTypeID {
	return RegisterType[T](w.registry)
}

// Component bundles value as a ComponentData for CreateWithComponents,
// registering T if this is its first use.
func Component[T any](w *World, value T) ComponentData {
	return ComponentData{Type: Register[T](w), Value: value}
}

func (w *World) ensureArchetype(types []ComponentTypeID) *Archetype {
	sorted := sortedTypeSet(types)
	id := hashArchetypeID(sorted)
	if a, ok := w.archetypes[id]; ok {
		return a
	}
	a := newArchetype(sorted, w.registry)
	w.archetypes[id] = a
	return a
}

// Create spawns a component-less entity into the empty archetype.
func (w *World) Create() EntityHandle {
	h := w.entities.Create()
	empty := w.ensureArchetype(nil)
	_ = empty.Add(h.ID(), map[ComponentTypeID]any{})
	w.indexEntity(h.ID(), empty.ID(), uint32(empty.Size()-1))
	return h
}

// CreateWithComponents spawns an entity directly into the archetype for the
// given component set. Fails if any component type was never registered.
func (w *World) CreateWithComponents(data []ComponentData) (EntityHandle, bool) {
	types := make([]ComponentTypeID, 0, len(data))
	values := make(map[ComponentTypeID]any, len(data))
	for _, d := range data {
		if _, ok := w.registry.descriptorOf(d.Type); !ok {
			return 0, false
		}
		types = append(types, d.Type)
		values[d.Type] = d.Value
	}

	h := w.entities.Create()
	arch := w.ensureArchetype(types)
	if err := arch.Add(h.ID(), values); err != nil {
		w.entities.Destroy(h)
		return 0, false
	}
	w.indexEntity(h.ID(), arch.ID(), uint32(arch.Size()-1))
	return h, true
}

func (w *World) indexEntity(id EntityID, archetype ArchetypeID, row uint32) {
	w.entityIndex.Put(uint32(id), entityLocation{archetype: archetype, row: row})
}

// IsAlive reports whether h refers to a currently live entity.
func (w *World) IsAlive(h EntityHandle) bool {
	return w.entities.IsAlive(h)
}

// HandleOf reconstructs the current handle for a bare EntityID read out of
// an archetype row (query results, debug tooling). id must belong to a
// currently live row.
func (w *World) HandleOf(id EntityID) EntityHandle {
	return w.entities.HandleOf(id)
}

func (w *World) locate(h EntityHandle) (*Archetype, entityLocation, bool) {
	if !w.entities.IsAlive(h) {
		return nil, entityLocation{}, false
	}
	loc, ok := w.entityIndex.Get(uint32(h.ID()))
	if !ok {
		return nil, entityLocation{}, false
	}
	a, ok := w.archetypes[loc.archetype]
	if !ok {
		return nil, entityLocation{}, false
	}
	return a, loc, true
}

// Add attaches value as entity h's component of type T, moving h into the
// archetype for its old type set plus T. Fails (returning false, with no
// side effects) if h is not alive, T is unregistered, or h already has T.
func Add[T any](w *World, h EntityHandle, value T) bool {
	t, ok := TypeID[T](w.registry)
	if !ok {
		return false
	}

	oldArch, loc, ok := w.locate(h)
	if !ok {
		return false
	}
	if oldArch.HasComponentType(t) {
		return false
	}

	newArch := w.transition(oldArch, t, true)

	values, eff, ok := oldArch.Extract(h.ID())
	if !ok {
		return false
	}
	w.applyRemovalEffect(loc.archetype, eff)
	values[t] = value

	_ = newArch.Add(h.ID(), values)
	w.indexEntity(h.ID(), newArch.ID(), uint32(newArch.Size()-1))
	return true
}

// Remove detaches entity h's component of type T, moving h into the
// archetype for its old type set minus T. Fails silently (returns false) if
// h is not alive, T is unregistered, or h does not have T.
func Remove[T any](w *World, h EntityHandle) bool {
	t, ok := TypeID[T](w.registry)
	if !ok {
		return false
	}

	oldArch, loc, ok := w.locate(h)
	if !ok {
		return false
	}
	if !oldArch.HasComponentType(t) {
		return false
	}

	newArch := w.transition(oldArch, t, false)

	values, eff, ok := oldArch.Extract(h.ID())
	if !ok {
		return false
	}
	w.applyRemovalEffect(loc.archetype, eff)
	delete(values, t)

	_ = newArch.Add(h.ID(), values)
	w.indexEntity(h.ID(), newArch.ID(), uint32(newArch.Size()-1))
	return true
}

// applyRemovalEffect updates entityIndex for whichever entity got
// swap-moved into a vacated row during a Remove/Extract on archetype a,
// keeping World.entityIndex in sync with the archetype's own entityToRow
// (spec §3's redundancy invariant).
func (w *World) applyRemovalEffect(a ArchetypeID, eff removalEffect) {
	if eff.Moved {
		w.indexEntity(eff.Entity, a, uint32(eff.NewRow))
	}
}

// transition returns the archetype reached from old by adding (or
// removing, if add is false) component type t, consulting and populating
// the cached edge in both directions so the second such transition for the
// same (old, t) pair is an O(1) map lookup (spec §4.3/§9).
func (w *World) transition(old *Archetype, t ComponentTypeID, add bool) *Archetype {
	if add {
		if target, ok := old.GetAddEdge(t); ok {
			return w.archetypes[target]
		}
	} else {
		if target, ok := old.GetRemoveEdge(t); ok {
			return w.archetypes[target]
		}
	}

	var newTypes []ComponentTypeID
	if add {
		newTypes = append(append([]ComponentTypeID(nil), old.ComponentTypes()...), t)
	} else {
		newTypes = make([]ComponentTypeID, 0, len(old.ComponentTypes()))
		for _, ct := range old.ComponentTypes() {
			if ct != t {
				newTypes = append(newTypes, ct)
			}
		}
	}
	newArch := w.ensureArchetype(newTypes)

	if add {
		old.SetAddEdge(t, newArch.ID())
		newArch.SetRemoveEdge(t, old.ID())
	} else {
		old.SetRemoveEdge(t, newArch.ID())
		newArch.SetAddEdge(t, old.ID())
	}
	return newArch
}

// Get returns a pointer to entity h's component of type T, or nil if h is
// not alive, does not carry T, or T was never registered. The pointer is
// valid only until the next structural mutation of h's archetype.
func Get[T any](w *World, h EntityHandle) (*T, bool) {
	t, ok := TypeID[T](w.registry)
	if !ok {
		return nil, false
	}
	arch, _, ok := w.locate(h)
	if !ok {
		return nil, false
	}
	ptr, ok := arch.GetComponent(h.ID(), t)
	if !ok {
		return nil, false
	}
	return componentAtPtr[T](ptr), true
}

// Has reports whether entity h currently carries a component of type T.
func Has[T any](w *World, h EntityHandle) bool {
	t, ok := TypeID[T](w.registry)
	if !ok {
		return false
	}
	arch, _, ok := w.locate(h)
	if !ok {
		return false
	}
	return arch.HasComponentType(t)
}

// Despawn destroys entity h, removing it from its archetype and
// invalidating its handle (bumping its generation). Returns false if h was
// already stale.
func (w *World) Despawn(h EntityHandle) bool {
	arch, loc, ok := w.locate(h)
	if !ok {
		return false
	}
	eff, ok := arch.Remove(h.ID())
	if !ok {
		return false
	}
	w.applyRemovalEffect(loc.archetype, eff)
	w.entityIndex.Del(uint32(h.ID()))
	return w.entities.Destroy(h)
}

// Clear drops every archetype and entity, resetting the world as if newly
// constructed (the type registry is untouched — registration is
// append-only and independent of world contents).
func (w *World) Clear() {
	w.archetypes = make(map[ArchetypeID]*Archetype)
	w.entities = NewEntityManager()
	w.entityIndex = intmap.New[uint32, entityLocation](256)
	w.ensureArchetype(nil)
}

// EntityCount returns the number of currently live entities.
func (w *World) EntityCount() int {
	return w.entities.AliveCount()
}

// ArchetypeCount returns the number of archetype tables that currently
// exist: the empty archetype seeded by NewWorld/Clear plus every archetype
// created lazily since. Only Clear drops archetypes.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes)
}

// forEachArchetype calls fn for every archetype currently tracked by the
// world. Order is unspecified (map iteration).
func (w *World) forEachArchetype(fn func(*Archetype)) {
	for _, a := range w.archetypes {
		fn(a)
	}
}

// Archetypes returns every archetype table currently known to the world, in
// no particular order. Exposed for introspection tooling (ecs/debugui,
// cmd/ecs-stress) rather than query execution, which goes through Query/
// QuerySystem instead.
func (w *World) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(w.archetypes))
	for _, a := range w.archetypes {
		out = append(out, a)
	}
	return out
}

// ComponentTypeName returns the registered Go type name for t, or "" if t
// is unknown to the registry. Exposed for introspection tooling.
func (w *World) ComponentTypeName(t ComponentTypeID) string {
	d, ok := w.registry.descriptorOf(t)
	if !ok {
		return ""
	}
	return d.rtype.String()
}

// ComponentAny returns entity h's component of type t boxed as `any`, for
// reflection-driven tooling that doesn't know T at compile time. The
// pointer backing the returned interface is valid only until the next
// structural mutation, same as Get[T].
func (w *World) ComponentAny(h EntityHandle, t ComponentTypeID) (any, bool) {
	arch, _, ok := w.locate(h)
	if !ok {
		return nil, false
	}
	ptr, ok := arch.GetComponent(h.ID(), t)
	if !ok {
		return nil, false
	}
	d, ok := w.registry.descriptorOf(t)
	if !ok {
		return nil, false
	}
	return reflect.NewAt(d.rtype, ptr).Interface(), true
}

// archetypeIDs returns every currently-known archetype id, sorted for
// deterministic iteration. Nothing in the package calls it.
func (w *World) archetypeIDs() []ArchetypeID {
	ids := make([]ArchetypeID, 0, len(w.archetypes))
	for id := range w.archetypes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
