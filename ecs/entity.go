package ecs

// EntityID is the low 32 bits of a handle: a dense, reusable slot index.
type EntityID uint32

// EntityGeneration is the high 32 bits of a handle: incremented every time
// its slot is destroyed, invalidating any handle still holding the old
// value.
type EntityGeneration uint32

// EntityHandle is the only stable external reference to an entity. It packs
// an EntityID and EntityGeneration into a single 64-bit value so handles
// compare with a plain ==.
type EntityHandle uint64

// NewEntityHandle packs an id and generation into a handle.
func NewEntityHandle(id EntityID, gen EntityGeneration) EntityHandle {
	return EntityHandle(uint64(gen)<<32 | uint64(id))
}

// ID extracts the entity id half of the handle.
func (h EntityHandle) ID() EntityID {
	return EntityID(uint32(h))
}

// Generation extracts the generation half of the handle.
func (h EntityHandle) Generation() EntityGeneration {
	return EntityGeneration(uint32(h >> 32))
}

// EntityManager allocates and recycles EntityIDs, stamping each with a
// generation so stale handles can be detected after reuse.
//
// The manager is not safe for concurrent use; the engine's concurrency
// model (spec §5) is single-threaded and cooperative, so no internal
// locking is done here.
type EntityManager struct {
	generations []EntityGeneration
	freeList    []EntityID
	aliveCount  int
}

// NewEntityManager creates an empty entity manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{}
}

// Create allocates a new entity handle, reusing a freed id when available.
func (m *EntityManager) Create() EntityHandle {
	if n := len(m.freeList); n > 0 {
		id := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		m.aliveCount++
		return NewEntityHandle(id, m.generations[id])
	}

	id := EntityID(len(m.generations))
	m.generations = append(m.generations, 0)
	m.aliveCount++
	return NewEntityHandle(id, 0)
}

// Destroy invalidates h by bumping its generation and returns the id to the
// free list. Returns false if h was already stale.
func (m *EntityManager) Destroy(h EntityHandle) bool {
	if !m.IsAlive(h) {
		return false
	}

	id := h.ID()
	m.generations[id]++
	m.freeList = append(m.freeList, id)
	m.aliveCount--
	return true
}

// IsAlive reports whether h still refers to a live entity. Pure: never
// mutates manager state.
func (m *EntityManager) IsAlive(h EntityHandle) bool {
	id := h.ID()
	return int(id) < len(m.generations) && m.generations[id] == h.Generation()
}

// AliveCount returns the number of currently live entities.
func (m *EntityManager) AliveCount() int {
	return m.aliveCount
}

// HandleOf reconstructs the current handle for id. Used internally to turn
// the bare EntityIDs archetypes store back into full handles for query
// results; callers must already know id came from a live archetype row.
func (m *EntityManager) HandleOf(id EntityID) EntityHandle {
	return NewEntityHandle(id, m.generations[id])
}
