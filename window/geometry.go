// Package window implements virtualized windowing over large ordered
// collections: given a scroll offset and a viewport, it computes the small
// contiguous index range worth materializing, per-index placements, and
// scroll-to-index targets. All computation is pure and synchronous; the host
// owns the actual scrolling surface and feeds offsets in.
package window

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry reports a caller-contract violation in the supplied
// dimensions, such as a non-positive item extent or a negative overscan.
// These indicate a programming error upstream and are surfaced immediately
// rather than silently degraded.
var ErrInvalidGeometry = errors.New("window: invalid geometry")

// Geometry describes a single-axis window: the fixed extent of each item,
// the extent of the visible viewport, and how many extra items to
// materialize beyond the strictly visible range. Extents are in terminal
// cells.
type Geometry struct {
	// ItemExtent is the fixed height of a single item. Must be positive.
	ItemExtent int
	// Viewport is the height of the visible scrollable region.
	Viewport int
	// Overscan is the number of extra items rendered beyond the visible
	// range on each side, to reduce flicker during fast scrolling.
	Overscan int
}

// Validate reports whether the geometry satisfies the caller contract.
func (g Geometry) Validate() error {
	if g.ItemExtent <= 0 {
		return fmt.Errorf("%w: item extent %d must be positive", ErrInvalidGeometry, g.ItemExtent)
	}
	if g.Viewport < 0 {
		return fmt.Errorf("%w: viewport %d must not be negative", ErrInvalidGeometry, g.Viewport)
	}
	if g.Overscan < 0 {
		return fmt.Errorf("%w: overscan %d must not be negative", ErrInvalidGeometry, g.Overscan)
	}
	return nil
}

// GridGeometry describes a two-dimensional window. The container width is
// host-measured and may be zero while unmeasured; everything else must be
// set up front.
type GridGeometry struct {
	// ItemWidth and ItemHeight are the fixed cell dimensions. Must be
	// positive.
	ItemWidth  int
	ItemHeight int
	// Gap is the spacing between cells, both horizontally and vertically.
	Gap int
	// ContainerWidth is the measured width of the hosting container. Zero
	// means not yet measured.
	ContainerWidth int
	// Viewport is the height of the visible scrollable region.
	Viewport int
	// Overscan is counted in rows.
	Overscan int
}

// Validate reports whether the geometry satisfies the caller contract. A
// zero ContainerWidth is legal: it is the defined unmeasured state.
func (g GridGeometry) Validate() error {
	if g.ItemWidth <= 0 {
		return fmt.Errorf("%w: item width %d must be positive", ErrInvalidGeometry, g.ItemWidth)
	}
	if g.ItemHeight <= 0 {
		return fmt.Errorf("%w: item height %d must be positive", ErrInvalidGeometry, g.ItemHeight)
	}
	if g.Gap < 0 {
		return fmt.Errorf("%w: gap %d must not be negative", ErrInvalidGeometry, g.Gap)
	}
	if g.ContainerWidth < 0 {
		return fmt.Errorf("%w: container width %d must not be negative", ErrInvalidGeometry, g.ContainerWidth)
	}
	if g.Viewport < 0 {
		return fmt.Errorf("%w: viewport %d must not be negative", ErrInvalidGeometry, g.Viewport)
	}
	if g.Overscan < 0 {
		return fmt.Errorf("%w: overscan %d must not be negative", ErrInvalidGeometry, g.Overscan)
	}
	return nil
}

// RowHeight returns the vertical extent one grid row occupies, including the
// trailing gap.
func (g GridGeometry) RowHeight() int {
	return g.ItemHeight + g.Gap
}

// Placement is the absolute position of an item inside the total scrollable
// extent. Left is always zero for single-axis lists.
type Placement struct {
	Top  int
	Left int
}

// Align selects where inside the viewport a scroll-to target lands.
type Align int

const (
	// AlignStart places the item at the top of the viewport.
	AlignStart Align = iota
	// AlignCenter centers the item in the viewport.
	AlignCenter
	// AlignEnd places the item at the bottom of the viewport.
	AlignEnd
)

// String implements fmt.Stringer.
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return fmt.Sprintf("align(%d)", int(a))
	}
}

// Columns derives how many columns fit in a container of the given width.
// The result is never less than one, so row/column derivation can safely
// divide by it. Callers model an unmeasured container (width zero) as a
// separate state before consulting this formula.
func Columns(containerWidth, itemWidth, gap int) int {
	return max(1, (containerWidth+gap)/(itemWidth+gap))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
