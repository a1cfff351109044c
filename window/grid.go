package window

import (
	"github.com/charmbracelet/x/exp/ordered"
)

// GridController tracks a scroll offset over a two-dimensional window. Row
// windowing reduces to the single-axis range computation with the row height
// as the item extent; the row range is then expanded into a flat item-index
// range.
//
// Until the host reports a container width the grid is in a defined
// unmeasured state: zero columns, zero rows, empty visible range. That state
// is distinct from an empty collection.
type GridController struct {
	geo    GridGeometry
	count  int
	offset int
}

// NewGridController returns a grid controller over count items. It fails
// fast with ErrInvalidGeometry on a caller-contract violation; a zero
// container width is legal and means not yet measured.
func NewGridController(geo GridGeometry, count int) (*GridController, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &GridController{geo: geo, count: max(0, count)}, nil
}

// Offset returns the current scroll offset.
func (g *GridController) Offset() int { return g.offset }

// SetOffset records a new scroll offset from the host viewport.
func (g *GridController) SetOffset(offset int) {
	g.offset = max(0, offset)
}

// Count returns the collection length.
func (g *GridController) Count() int { return g.count }

// SetCount updates the collection length.
func (g *GridController) SetCount(count int) {
	g.count = max(0, count)
}

// SetContainerWidth records a host-measured container width, the grid's
// resize signal. Column count is derived from it on the next query.
func (g *GridController) SetContainerWidth(width int) {
	g.geo.ContainerWidth = max(0, width)
}

// SetViewport updates the viewport extent.
func (g *GridController) SetViewport(viewport int) {
	g.geo.Viewport = max(0, viewport)
}

// Geometry returns the current geometry.
func (g *GridController) Geometry() GridGeometry { return g.geo }

// Unmeasured reports whether the container width has not been measured yet.
func (g *GridController) Unmeasured() bool {
	return g.geo.ContainerWidth == 0
}

// Empty reports whether the collection has no items.
func (g *GridController) Empty() bool { return g.count == 0 }

// Columns returns the derived column count: zero while unmeasured, at least
// one otherwise.
func (g *GridController) Columns() int {
	if g.Unmeasured() {
		return 0
	}
	return Columns(g.geo.ContainerWidth, g.geo.ItemWidth, g.geo.Gap)
}

// Rows returns the derived row count: zero while unmeasured or empty.
func (g *GridController) Rows() int {
	cols := g.Columns()
	if cols == 0 || g.count == 0 {
		return 0
	}
	return ceilDiv(g.count, cols)
}

// RowHeight returns the vertical extent of one row, including the gap.
func (g *GridController) RowHeight() int {
	return g.geo.RowHeight()
}

// TotalExtent returns the full scrollable extent the host should reserve.
func (g *GridController) TotalExtent() int {
	return g.Rows() * g.RowHeight()
}

func (g *GridController) rowGeometry() Geometry {
	return Geometry{
		ItemExtent: g.RowHeight(),
		Viewport:   g.geo.Viewport,
		Overscan:   g.geo.Overscan,
	}
}

// RowRange returns the visible row range for the current offset.
func (g *GridController) RowRange() Range {
	rows := g.Rows()
	if rows == 0 {
		return EmptyRange
	}
	// Geometry was validated at construction; Compute cannot fail here.
	r, _ := Compute(g.offset, g.rowGeometry(), rows)
	return r
}

// VisibleRange expands the visible row range into a flat item-index range.
func (g *GridController) VisibleRange() Range {
	rows := g.RowRange()
	if rows.Empty() {
		return EmptyRange
	}
	cols := g.Columns()
	return Range{
		Start: rows.Start * cols,
		End:   min(g.count-1, (rows.End+1)*cols-1),
	}
}

// IsIndexVisible reports whether index falls inside the current visible
// range.
func (g *GridController) IsIndexVisible(index int) bool {
	return g.VisibleRange().Contains(index)
}

// PlacementFor returns the absolute cell position of the item at index,
// derived from its row and column.
func (g *GridController) PlacementFor(index int) Placement {
	cols := g.Columns()
	if cols == 0 {
		return Placement{}
	}
	return Placement{
		Top:  (index / cols) * g.RowHeight(),
		Left: (index % cols) * (g.geo.ItemWidth + g.geo.Gap),
	}
}

// ScrollTo computes the offset that brings the row containing index into
// view with the given alignment, applies it, and returns it. Clamping is
// uniform across alignments, as for the list controller. A no-op while
// unmeasured.
func (g *GridController) ScrollTo(index int, align Align) int {
	cols := g.Columns()
	if cols == 0 || g.count == 0 {
		return g.offset
	}
	index = ordered.Clamp(index, 0, g.count-1)
	row := index / cols
	target := scrollTarget(row, g.RowHeight(), g.geo.Viewport, align)
	g.SetOffset(clampOffset(target, g.TotalExtent(), g.geo.Viewport))
	return g.offset
}
