package window

// Source is an ordered, externally-owned, index-addressable collection. The
// engine never mutates it and never assumes density: At may report that no
// item exists at an in-range index, and such holes are simply skipped when
// building visible items.
type Source[T any] interface {
	// Len returns the number of addressable indices.
	Len() int
	// At returns the item at the given index, or ok=false when the index
	// holds no item.
	At(index int) (T, bool)
}

// Slice adapts a dense slice to the Source interface.
type Slice[T any] []T

// Len implements Source.
func (s Slice[T]) Len() int { return len(s) }

// At implements Source.
func (s Slice[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(s) {
		var zero T
		return zero, false
	}
	return s[index], true
}

// SourceFunc adapts a pair of functions to the Source interface, for callers
// whose collections are sparse or lazily materialized.
type SourceFunc[T any] struct {
	LenFunc func() int
	AtFunc  func(index int) (T, bool)
}

// Len implements Source.
func (s SourceFunc[T]) Len() int { return s.LenFunc() }

// At implements Source.
func (s SourceFunc[T]) At(index int) (T, bool) { return s.AtFunc(index) }
