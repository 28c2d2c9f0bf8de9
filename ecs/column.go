package ecs

import "unsafe"

// componentColumn is a type-erased handle onto one archetype's per-type
// storage. Concrete columns are dense, contiguous []T slices (typedColumn),
// so Go's GC scans component data normally — the spec's design notes (§9)
// ask for contiguous per-type buffers driven by a descriptor rather than
// one heap cell per component instance; typedColumn is that strategy
// expressed with Go generics instead of runtime type introspection.
type componentColumn interface {
	// Append copies v (must be the column's T) into a new row and returns
	// its row index.
	Append(v any) int
	// At returns a pointer to row's storage, valid until the next
	// structural mutation of the owning archetype.
	At(row int) unsafe.Pointer
	// SwapRemove removes row by moving the last row into its place
	// (amortised O(1)) and zeroing the vacated slot so it carries no
	// stale references.
	SwapRemove(row int)
	// Extract removes row like SwapRemove but first copies its value out
	// for the caller, transferring logical ownership.
	Extract(row int) any
	Len() int
	Clear()
}

type typedColumn[T any] struct {
	data []T
}

func newTypedColumn[T any]() componentColumn {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) Append(v any) int {
	row := len(c.data)
	c.data = append(c.data, v.(T))
	return row
}

func (c *typedColumn[T]) At(row int) unsafe.Pointer {
	return unsafe.Pointer(&c.data[row])
}

func (c *typedColumn[T]) SwapRemove(row int) {
	last := len(c.data) - 1
	if row != last {
		c.data[row] = c.data[last]
	}
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *typedColumn[T]) Extract(row int) any {
	v := c.data[row]
	c.SwapRemove(row)
	return v
}

func (c *typedColumn[T]) Len() int {
	return len(c.data)
}

func (c *typedColumn[T]) Clear() {
	c.data = c.data[:0]
}

// componentAt casts a column cell to *T. Callers must already know the
// column holds T (the caller's own type parameter at the call site, per
// spec §9's "typed accessors cast locally").
func componentAt[T any](col componentColumn, row int) *T {
	return (*T)(col.At(row))
}

// componentAtPtr casts a raw cell pointer (from Archetype.GetComponent or a
// QueryResult) to *T. Callers must already know the pointer's type.
func componentAtPtr[T any](ptr unsafe.Pointer) *T {
	return (*T)(ptr)
}
