package window

// Range is a contiguous, inclusive, zero-based index range. The empty range
// has End < Start.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the canonical empty range.
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// Compute maps a scroll offset to the index range worth materializing.
//
// The first index is the item under the offset, backed up by the overscan;
// the range then extends far enough to cover the viewport plus overscan on
// the far side. Every item at least partially inside
// [offset, offset+viewport] is always included.
//
// A zero count yields the empty range. An invalid geometry yields
// ErrInvalidGeometry. The function is pure: identical inputs always produce
// identical output, so it is safe to call on every scroll tick or to memoize
// on its input tuple.
func Compute(offset int, geo Geometry, count int) (Range, error) {
	if err := geo.Validate(); err != nil {
		return EmptyRange, err
	}
	if count <= 0 {
		return EmptyRange, nil
	}
	if offset < 0 {
		offset = 0
	}
	// A host may briefly report an offset past the end, e.g. right after the
	// collection shrinks; keep the range inside the collection.
	start := min(count-1, max(0, offset/geo.ItemExtent-geo.Overscan))
	visible := ceilDiv(geo.Viewport, geo.ItemExtent) + 2*geo.Overscan
	end := min(count-1, start+visible)
	return Range{Start: start, End: end}, nil
}
