package window

import (
	"github.com/charmbracelet/x/exp/ordered"
)

// rangeInputs is the full input tuple of Compute. The controller memoizes
// the last computed range on it; since Compute is pure, a tuple match means
// the cached range is still correct.
type rangeInputs struct {
	offset int
	geo    Geometry
	count  int
}

// Controller tracks a scroll offset over a single-axis window and answers
// visibility, placement, and scroll-to queries. It owns no rendering and no
// items; callers that want custom visual layouts use it directly, while the
// list component wraps it.
//
// A Controller is not safe for concurrent use. Each instance owns its own
// scroll state; independent instances share nothing.
type Controller struct {
	geo    Geometry
	count  int
	offset int

	memoIn  rangeInputs
	memoOut Range
	memoOK  bool
}

// NewController returns a controller over count items with the given
// geometry. It fails fast with ErrInvalidGeometry on a caller-contract
// violation.
func NewController(geo Geometry, count int) (*Controller, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &Controller{geo: geo, count: max(0, count)}, nil
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() int { return c.offset }

// SetOffset records a new scroll offset, typically wired to the host
// viewport's scroll signal. Negative offsets clamp to zero; the upper bound
// is the host's concern.
func (c *Controller) SetOffset(offset int) {
	c.offset = max(0, offset)
}

// Count returns the collection length the controller was last told about.
func (c *Controller) Count() int { return c.count }

// SetCount updates the collection length.
func (c *Controller) SetCount(count int) {
	c.count = max(0, count)
}

// SetViewport updates the viewport extent, typically on host resize.
func (c *Controller) SetViewport(viewport int) {
	c.geo.Viewport = max(0, viewport)
}

// Geometry returns the current geometry.
func (c *Controller) Geometry() Geometry { return c.geo }

// Empty reports whether the collection has no items. This is a distinct
// observable state, not merely an empty visible range.
func (c *Controller) Empty() bool { return c.count == 0 }

// TotalExtent returns the full scrollable extent the host should reserve.
func (c *Controller) TotalExtent() int {
	return c.count * c.geo.ItemExtent
}

// VisibleRange returns the index range to materialize for the current
// offset. The range is recomputed deterministically from the current
// (offset, geometry, count) tuple, with a single-entry memo so repeated
// queries between scroll ticks are free.
func (c *Controller) VisibleRange() Range {
	in := rangeInputs{offset: c.offset, geo: c.geo, count: c.count}
	if c.memoOK && in == c.memoIn {
		return c.memoOut
	}
	// Geometry was validated at construction; Compute cannot fail here.
	r, _ := Compute(c.offset, c.geo, c.count)
	c.memoIn, c.memoOut, c.memoOK = in, r, true
	return r
}

// IsIndexVisible reports whether index falls inside the current visible
// range.
func (c *Controller) IsIndexVisible(index int) bool {
	return c.VisibleRange().Contains(index)
}

// PlacementFor returns the absolute position of the item at index inside
// the total scrollable extent.
func (c *Controller) PlacementFor(index int) Placement {
	return Placement{Top: index * c.geo.ItemExtent}
}

// ScrollTo computes the offset that brings index into view with the given
// alignment, applies it, and returns it. The target is clamped uniformly
// across all alignments into [0, TotalExtent-Viewport]; when the viewport is
// at least as tall as the content the clamp collapses to zero and scrolling
// is a no-op.
func (c *Controller) ScrollTo(index int, align Align) int {
	if c.count == 0 {
		return c.offset
	}
	index = ordered.Clamp(index, 0, c.count-1)
	target := scrollTarget(index, c.geo.ItemExtent, c.geo.Viewport, align)
	c.SetOffset(clampOffset(target, c.TotalExtent(), c.geo.Viewport))
	return c.offset
}

func scrollTarget(index, itemExtent, viewport int, align Align) int {
	switch align {
	case AlignCenter:
		return index*itemExtent - viewport/2 + itemExtent/2
	case AlignEnd:
		return (index+1)*itemExtent - viewport
	default:
		return index * itemExtent
	}
}

func clampOffset(target, totalExtent, viewport int) int {
	return ordered.Clamp(target, 0, max(0, totalExtent-viewport))
}
