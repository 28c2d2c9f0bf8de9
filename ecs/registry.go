package ecs

import "reflect"

// ComponentTypeID is a dense runtime id assigned to a component type the
// first time it is registered. It is the currency archetypes, columns and
// queries use to identify component types; reflect.Type is consulted only
// to map a Go type to its id (RegisterType, TypeID) and by the
// introspection helpers World.ComponentTypeName and World.ComponentAny.
type ComponentTypeID uint32

// typeDescriptor is the per-type record the spec's design notes (§9) call
// for: an id, the storage the column factory needs, and the reflect.Type
// of the registered Go type (used for type names and reflection-driven
// component access).
type typeDescriptor struct {
	id      ComponentTypeID
	rtype   reflect.Type
	newCol  func() componentColumn
	newZero func() any
}

// TypeRegistry assigns dense ComponentTypeIDs to component types discovered
// at runtime. Registration is append-only and idempotent: registering the
// same Go type twice returns the same id.
type TypeRegistry struct {
	byType      map[reflect.Type]ComponentTypeID
	descriptors []typeDescriptor
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byType: make(map[reflect.Type]ComponentTypeID),
	}
}

// RegisterType assigns the next sequential ComponentTypeID to T, or returns
// its existing id if T was registered before.
func RegisterType[T any](r *TypeRegistry) ComponentTypeID {
	rt := reflect.TypeFor[T]()
	if id, ok := r.byType[rt]; ok {
		return id
	}

	id := ComponentTypeID(len(r.descriptors))
	r.descriptors = append(r.descriptors, typeDescriptor{
		id:      id,
		rtype:   rt,
		newCol:  func() componentColumn { return newTypedColumn[T]() },
		newZero: func() any { var zero T; return zero },
	})
	r.byType[rt] = id
	return id
}

// TypeID returns the ComponentTypeID assigned to T, and false if T has
// never been registered.
func TypeID[T any](r *TypeRegistry) (ComponentTypeID, bool) {
	id, ok := r.byType[reflect.TypeFor[T]()]
	return id, ok
}

// MustTypeID is TypeID but panics when T is unregistered. Intended for the
// test-only "upgrade not-registered to panic" mode spec.md §4.4 allows.
func MustTypeID[T any](r *TypeRegistry) ComponentTypeID {
	id, ok := TypeID[T](r)
	if !ok {
		panic("ecs: component type " + reflect.TypeFor[T]().String() + " not registered")
	}
	return id
}

func (r *TypeRegistry) descriptorOf(id ComponentTypeID) (typeDescriptor, bool) {
	if int(id) < 0 || int(id) >= len(r.descriptors) {
		return typeDescriptor{}, false
	}
	return r.descriptors[id], true
}

func (r *TypeRegistry) newColumn(id ComponentTypeID) componentColumn {
	d, ok := r.descriptorOf(id)
	if !ok {
		panic("ecs: unknown component type id")
	}
	return d.newCol()
}
