package ecs

import "reflect"

// ResourceStore is a keyed container of process-wide singletons shared
// among systems — global game state, configuration, or externally-owned
// handles like a graphics context (spec §4.6).
//
// Resource.Get[T] semantics are one of the spec's explicitly open
// questions (§9); this implementation resolves it uniformly in favor of
// "canonical mutable instance": Get always returns a pointer to the one
// stored instance — a pointer into the store's own storage for by-value
// resources, the registered external pointer for by-reference ones — so
// mutations through it are observed by every later Get[T] call.
type ResourceStore struct {
	byValue map[reflect.Type]any
	byRef   map[reflect.Type]any
}

// NewResourceStore creates an empty resource store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		byValue: make(map[reflect.Type]any),
		byRef:   make(map[reflect.Type]any),
	}
}

// InsertResource stores value as the canonical instance of T, overwriting
// any previous value of that type.
func InsertResource[T any](r *ResourceStore, value T) {
	r.byValue[reflect.TypeFor[T]()] = &value
}

// GetResource returns the canonical instance of T, or nil if none has been
// inserted. Mutations through the returned pointer are visible to every
// subsequent GetResource[T] call.
func GetResource[T any](r *ResourceStore) (*T, bool) {
	v, ok := r.byValue[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// InsertResourceRef stores an externally-owned pointer as the resource of
// type T, for resources whose lifetime lives outside the store (e.g. a
// graphics context owned by the host).
func InsertResourceRef[T any](r *ResourceStore, ref *T) {
	r.byRef[reflect.TypeFor[T]()] = ref
}

// GetResourceRef returns the externally-owned pointer registered for T, or
// nil if none was inserted.
func GetResourceRef[T any](r *ResourceStore) (*T, bool) {
	v, ok := r.byRef[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// HasResource reports whether a by-value resource of type T is present.
func HasResource[T any](r *ResourceStore) bool {
	_, ok := r.byValue[reflect.TypeFor[T]()]
	return ok
}

// HasResourceRef reports whether a by-reference resource of type T is
// present.
func HasResourceRef[T any](r *ResourceStore) bool {
	_, ok := r.byRef[reflect.TypeFor[T]()]
	return ok
}
