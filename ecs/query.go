package ecs

import "unsafe"

// FilterOp is the operator a Filter applies against a candidate archetype.
type FilterOp int

const (
	// FilterWith requires the archetype to carry the given component type.
	FilterWith FilterOp = iota
	// FilterWithout requires the archetype NOT to carry the given type.
	FilterWithout
	// FilterChanged is reserved for future per-column write-tick change
	// detection (spec §9). It currently matches every archetype — a
	// deliberate stub, not an oversight, per SPEC_FULL.md.
	FilterChanged
)

// Filter narrows a query's archetype match beyond the required component
// set.
type Filter struct {
	Type ComponentTypeID
	Op   FilterOp
}

// With requires the matched archetype to carry component type t.
func With(t ComponentTypeID) Filter { return Filter{Type: t, Op: FilterWith} }

// Without excludes archetypes carrying component type t.
func Without(t ComponentTypeID) Filter { return Filter{Type: t, Op: FilterWithout} }

// Changed is reserved; see FilterChanged.
func Changed(t ComponentTypeID) Filter { return Filter{Type: t, Op: FilterChanged} }

func matchesFilters(a *Archetype, filters []Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case FilterWith:
			if !a.HasComponentType(f.Type) {
				return false
			}
		case FilterWithout:
			if a.HasComponentType(f.Type) {
				return false
			}
		case FilterChanged:
			// Stub: matches unconditionally.
		}
	}
	return true
}

// QueryResult is one matched row: the entity and a raw pointer per
// requested component type. Pointers are valid only until the next
// structural mutation of the entity's archetype (spec §5).
type QueryResult struct {
	Entity     EntityHandle
	Components map[ComponentTypeID]unsafe.Pointer
}

// ReadComponent casts a result's raw pointer for type t to *T. Panics if t
// isn't present in the result (the caller asked for a type it didn't
// query).
func ReadComponent[T any](r QueryResult, t ComponentTypeID) *T {
	ptr, ok := r.Components[t]
	if !ok {
		panic("ecs: component type not present in query result")
	}
	return componentAtPtr[T](ptr)
}

func collectRow(w *World, a *Archetype, row int, types []ComponentTypeID) QueryResult {
	comps := make(map[ComponentTypeID]unsafe.Pointer, len(types))
	for _, t := range types {
		comps[t] = a.GetComponentArray(t).At(row)
	}
	entity := a.Entities()[row]
	return QueryResult{Entity: w.entities.HandleOf(entity), Components: comps}
}

// Query runs a one-shot, uncached scan: every archetype whose type set is a
// superset of required and which satisfies every filter contributes one
// QueryResult per row.
func (w *World) Query(required []ComponentTypeID, filters ...Filter) []QueryResult {
	var results []QueryResult
	w.forEachArchetype(func(a *Archetype) {
		if !a.Matches(required) || !matchesFilters(a, filters) {
			return
		}
		for row := range a.Entities() {
			results = append(results, collectRow(w, a, row, required))
		}
	})
	return results
}

// QueryChunk is one contiguous slice of a QuerySystem's most recent result
// buffer, used to seed parallel iteration (spec §4.5). Each chunk owns an
// independent copy of its slice — it does not alias the query's internal
// buffer, so a later Query call on the same QuerySystem cannot invalidate a
// chunk a caller is still holding (SPEC_FULL.md resolves this; the teacher
// spec leaves chunk aliasing undefined).
type QueryChunk struct {
	Results    []QueryResult
	Start, End int
}

// QuerySystem is a stateful, cached query: it remembers the set of matching
// archetype ids and the archetype version observed the last time its cache
// was built, rebuilding only when that cache goes stale.
type QuerySystem struct {
	required []ComponentTypeID
	filters  []Filter

	cachedArchetypes    []ArchetypeID
	archetypeVersions   map[ArchetypeID]uint64
	lastArchetypeCount  int
	dirty               bool

	buffer []QueryResult

	rebuildCount uint64
}

// NewQuerySystem creates a cached query for entities carrying every type in
// required and satisfying every filter. The cache starts dirty.
func NewQuerySystem(required []ComponentTypeID, filters ...Filter) *QuerySystem {
	return &QuerySystem{
		required:           append([]ComponentTypeID(nil), required...),
		filters:            append([]Filter(nil), filters...),
		archetypeVersions:  make(map[ArchetypeID]uint64),
		lastArchetypeCount: -1,
		dirty:              true,
	}
}

// MarkDirty forces the next Query/Count to rebuild the archetype cache.
func (q *QuerySystem) MarkDirty() { q.dirty = true }

func (q *QuerySystem) stale(w *World) bool {
	if q.dirty {
		return true
	}
	if w.ArchetypeCount() != q.lastArchetypeCount {
		return true
	}
	for _, id := range q.cachedArchetypes {
		a, ok := w.archetypes[id]
		if !ok {
			return true
		}
		if v, ok := q.archetypeVersions[id]; !ok || v != a.Version() {
			return true
		}
	}
	return false
}

func (q *QuerySystem) rebuild(w *World) {
	q.cachedArchetypes = q.cachedArchetypes[:0]
	q.archetypeVersions = make(map[ArchetypeID]uint64, len(q.archetypeVersions))

	w.forEachArchetype(func(a *Archetype) {
		if !a.Matches(q.required) || !matchesFilters(a, q.filters) {
			return
		}
		q.cachedArchetypes = append(q.cachedArchetypes, a.ID())
		q.archetypeVersions[a.ID()] = a.Version()
	})
	q.lastArchetypeCount = w.ArchetypeCount()
	q.dirty = false
	q.rebuildCount++
}

// RebuildCount returns the number of times this query's archetype cache has
// been rebuilt, for stress/introspection tooling.
func (q *QuerySystem) RebuildCount() uint64 { return q.rebuildCount }

// Query rebuilds the archetype cache if stale, then returns every matching
// row. The returned slice is reused across calls; callers that need to
// retain results past the next Query/QueryChunked call should copy it.
func (q *QuerySystem) Query(w *World) []QueryResult {
	if q.stale(w) {
		q.rebuild(w)
	}

	q.buffer = q.buffer[:0]
	for _, id := range q.cachedArchetypes {
		a, ok := w.archetypes[id]
		if !ok {
			continue
		}
		for row, entity := range a.Entities() {
			// Defensive: an entity visited mid-iteration could in
			// principle have been despawned by earlier user code sharing
			// this buffer; skip rows whose handle no longer checks out.
			if !w.entities.IsAlive(w.entities.HandleOf(entity)) {
				continue
			}
			q.buffer = append(q.buffer, collectRow(w, a, row, q.required))
		}
	}
	return q.buffer
}

// Count returns the number of rows the query currently matches, rebuilding
// the cache first if stale. Cheaper than len(Query(w)) because it sums
// archetype sizes without materialising rows.
func (q *QuerySystem) Count(w *World) int {
	if q.stale(w) {
		q.rebuild(w)
	}
	total := 0
	for _, id := range q.cachedArchetypes {
		if a, ok := w.archetypes[id]; ok {
			total += a.Size()
		}
	}
	return total
}

// QueryChunked runs Query and splits the result into ceil(n/chunkSize)
// independent chunks, the last sized n - chunkSize*(numChunks-1).
func (q *QuerySystem) QueryChunked(w *World, chunkSize int) []QueryChunk {
	results := q.Query(w)
	if chunkSize <= 0 {
		chunkSize = len(results)
		if chunkSize == 0 {
			chunkSize = 1
		}
	}

	n := len(results)
	numChunks := (n + chunkSize - 1) / chunkSize
	chunks := make([]QueryChunk, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		view := make([]QueryResult, end-start)
		copy(view, results[start:end])
		chunks = append(chunks, QueryChunk{Results: view, Start: start, End: end})
	}
	return chunks
}
