// Package grid implements a virtualized two-dimensional grid component for
// Bubble Tea. Row windowing reduces to the single-axis range computation;
// the column count is derived from the host-measured container width.
package grid

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/charmbracelet/vport/internal/csync"
	"github.com/charmbracelet/vport/layout"
	"github.com/charmbracelet/vport/list"
	"github.com/charmbracelet/vport/window"
)

// Grid is a virtualized grid over a window.Source. Until the host reports a
// size it is in a defined unmeasured state: zero columns, no visible items,
// an empty view. That state is distinct from an empty source.
type Grid[T any] interface {
	layout.Sizeable
	layout.Focusable

	Init() tea.Cmd
	Update(tea.Msg) (Grid[T], tea.Cmd)
	View() string

	SetSource(window.Source[T]) tea.Cmd
	Source() window.Source[T]
	Empty() bool
	Unmeasured() bool

	Columns() int
	Rows() int
	VisibleRange() window.Range
	VisibleItems() []list.VisibleItem[T]
	IsIndexVisible(index int) bool
	TotalExtent() int

	Offset() int
	OnScroll(offset int) tea.Cmd
	ScrollTo(index int, align window.Align) tea.Cmd
	MoveUp(lines int) tea.Cmd
	MoveDown(lines int) tea.Cmd
	GoToTop() tea.Cmd
	GoToBottom() tea.Cmd
}

type confOptions[T any] struct {
	itemWidth    int
	itemHeight   int
	gap          int
	overscan     int
	renderFunc   list.RenderFunc[T]
	keyFunc      list.KeyFunc[T]
	keyMap       list.KeyMap
	styles       list.Styles
	emptyMessage string
	focused      bool
	enableMouse  bool
}

// Option configures a Grid.
type Option[T any] func(*confOptions[T])

// WithItemSize sets the fixed cell dimensions, in terminal cells.
func WithItemSize[T any](width, height int) Option[T] {
	return func(o *confOptions[T]) {
		o.itemWidth = width
		o.itemHeight = height
	}
}

// WithGap sets the spacing between cells, both horizontally and vertically.
func WithGap[T any](gap int) Option[T] {
	return func(o *confOptions[T]) {
		o.gap = gap
	}
}

// WithOverscan sets how many extra rows to materialize beyond the visible
// range on each side.
func WithOverscan[T any](overscan int) Option[T] {
	return func(o *confOptions[T]) {
		o.overscan = overscan
	}
}

// WithRenderFunc sets the cell render callback.
func WithRenderFunc[T any](fn list.RenderFunc[T]) Option[T] {
	return func(o *confOptions[T]) {
		o.renderFunc = fn
	}
}

// WithKeyFunc sets the stable-identity function used for render caching.
func WithKeyFunc[T any](fn list.KeyFunc[T]) Option[T] {
	return func(o *confOptions[T]) {
		o.keyFunc = fn
	}
}

// WithKeyMap sets the key bindings.
func WithKeyMap[T any](keyMap list.KeyMap) Option[T] {
	return func(o *confOptions[T]) {
		o.keyMap = keyMap
	}
}

// WithStyles sets the grid styles.
func WithStyles[T any](styles list.Styles) Option[T] {
	return func(o *confOptions[T]) {
		o.styles = styles
	}
}

// WithEmptyMessage sets the message shown when the source has no items.
func WithEmptyMessage[T any](msg string) Option[T] {
	return func(o *confOptions[T]) {
		o.emptyMessage = msg
	}
}

// WithFocus sets the initial focus state.
func WithFocus[T any](focus bool) Option[T] {
	return func(o *confOptions[T]) {
		o.focused = focus
	}
}

// WithEnableMouse enables mouse wheel scrolling.
func WithEnableMouse[T any]() Option[T] {
	return func(o *confOptions[T]) {
		o.enableMouse = true
	}
}

type grid[T any] struct {
	confOptions[T]

	ctrl   *window.GridController
	source window.Source[T]

	width  int
	height int

	cache *csync.VersionedMap[string, string]
}

// New returns a virtualized grid over source. Geometry options are a caller
// contract: New panics with ErrInvalidGeometry when the cell dimensions are
// not positive or the gap or overscan is negative.
func New[T any](source window.Source[T], opts ...Option[T]) Grid[T] {
	g := &grid[T]{
		confOptions: confOptions[T]{
			itemWidth:    1,
			itemHeight:   1,
			keyMap:       list.DefaultKeyMap(),
			styles:       list.DefaultStyles(),
			emptyMessage: "No items.",
			focused:      true,
		},
		source: source,
		cache:  csync.NewVersionedMap[string, string](),
	}
	for _, opt := range opts {
		opt(&g.confOptions)
	}
	if g.renderFunc == nil {
		g.renderFunc = func(item T, _ int, _ window.Placement) string {
			return fmt.Sprintf("%v", item)
		}
	}
	if g.keyFunc == nil {
		g.keyFunc = func(_ T, index int) string {
			return fmt.Sprintf("%d", index)
		}
	}

	geo := window.GridGeometry{
		ItemWidth:  g.itemWidth,
		ItemHeight: g.itemHeight,
		Gap:        g.gap,
		Overscan:   g.overscan,
	}
	ctrl, err := window.NewGridController(geo, sourceLen(g.source))
	if err != nil {
		panic(err)
	}
	g.ctrl = ctrl
	return g
}

func sourceLen[T any](s window.Source[T]) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

// Init implements Grid.
func (g *grid[T]) Init() tea.Cmd {
	return nil
}

// Update implements Grid.
func (g *grid[T]) Update(msg tea.Msg) (Grid[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if g.enableMouse {
			return g, g.handleMouseWheel(msg)
		}
	case tea.KeyPressMsg:
		if !g.focused {
			return g, nil
		}
		switch {
		case key.Matches(msg, g.keyMap.Down):
			return g, g.MoveDown(g.ctrl.RowHeight())
		case key.Matches(msg, g.keyMap.Up):
			return g, g.MoveUp(g.ctrl.RowHeight())
		case key.Matches(msg, g.keyMap.HalfPageDown):
			return g, g.MoveDown(g.height / 2)
		case key.Matches(msg, g.keyMap.HalfPageUp):
			return g, g.MoveUp(g.height / 2)
		case key.Matches(msg, g.keyMap.PageDown):
			return g, g.MoveDown(g.height)
		case key.Matches(msg, g.keyMap.PageUp):
			return g, g.MoveUp(g.height)
		case key.Matches(msg, g.keyMap.Home):
			return g, g.GoToTop()
		case key.Matches(msg, g.keyMap.End):
			return g, g.GoToBottom()
		}
	}
	return g, nil
}

func (g *grid[T]) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseWheelDown:
		return g.MoveDown(g.ctrl.RowHeight())
	case tea.MouseWheelUp:
		return g.MoveUp(g.ctrl.RowHeight())
	}
	return nil
}

// View implements Grid. Cells are laid out per placement: columns separated
// by the gap, rows separated by gap lines. Missing source entries render as
// blank cells so the grid stays aligned.
func (g *grid[T]) View() string {
	if g.Unmeasured() || g.height <= 0 {
		return ""
	}
	if g.Empty() {
		return g.styles.Empty.Render(g.emptyMessage)
	}

	offset := g.ctrl.Offset()
	cols := g.ctrl.Columns()
	rowHeight := g.ctrl.RowHeight()
	blankCell := strings.Repeat(" ", g.itemWidth)
	gapSep := strings.Repeat(" ", g.gap)

	lines := make([]string, g.height)
	for y := range g.height {
		abs := offset + y
		row := abs / rowHeight
		inRow := abs % rowHeight
		if row >= g.ctrl.Rows() || inRow >= g.itemHeight {
			continue // vertical gap or past the last row
		}

		cells := make([]string, 0, cols)
		for col := range cols {
			index := row*cols + col
			if index >= g.ctrl.Count() {
				break
			}
			item, ok := g.source.At(index)
			if !ok {
				cells = append(cells, blankCell)
				continue
			}
			cells = append(cells, g.cellLine(item, index, inRow, blankCell))
		}
		lines[y] = strings.Join(cells, gapSep)
	}
	return strings.Join(lines, "\n")
}

// cellLine returns one line of the rendered cell, padded to the cell width.
func (g *grid[T]) cellLine(item T, index, line int, blank string) string {
	view := g.renderedCell(item, index)
	cellLines := strings.Split(view, "\n")
	if line >= len(cellLines) {
		return blank
	}
	s := cellLines[line]
	if pad := g.itemWidth - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func (g *grid[T]) renderedCell(item T, index int) string {
	k := g.keyFunc(item, index)
	if view, ok := g.cache.Get(k); ok {
		return view
	}
	view := g.styles.Item.Render(g.renderFunc(item, index, g.ctrl.PlacementFor(index)))
	g.cache.Set(k, view)
	return view
}

// SetSource implements Grid.
func (g *grid[T]) SetSource(source window.Source[T]) tea.Cmd {
	g.source = source
	g.ctrl.SetCount(sourceLen(source))
	g.cache.Clear()
	return g.clampAndReport()
}

// Source implements Grid.
func (g *grid[T]) Source() window.Source[T] {
	return g.source
}

// Empty implements Grid.
func (g *grid[T]) Empty() bool {
	return g.ctrl.Empty()
}

// Unmeasured implements Grid.
func (g *grid[T]) Unmeasured() bool {
	return g.ctrl.Unmeasured()
}

// Columns implements Grid.
func (g *grid[T]) Columns() int {
	return g.ctrl.Columns()
}

// Rows implements Grid.
func (g *grid[T]) Rows() int {
	return g.ctrl.Rows()
}

// VisibleRange implements Grid.
func (g *grid[T]) VisibleRange() window.Range {
	return g.ctrl.VisibleRange()
}

// VisibleItems implements Grid. Indices whose source entry is missing are
// skipped.
func (g *grid[T]) VisibleItems() []list.VisibleItem[T] {
	r := g.ctrl.VisibleRange()
	if r.Empty() || g.source == nil {
		return nil
	}
	items := make([]list.VisibleItem[T], 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		item, ok := g.source.At(i)
		if !ok {
			continue
		}
		items = append(items, list.VisibleItem[T]{
			Item:      item,
			Index:     i,
			Placement: g.ctrl.PlacementFor(i),
		})
	}
	return items
}

// IsIndexVisible implements Grid.
func (g *grid[T]) IsIndexVisible(index int) bool {
	return g.ctrl.IsIndexVisible(index)
}

// TotalExtent implements Grid.
func (g *grid[T]) TotalExtent() int {
	return g.ctrl.TotalExtent()
}

// Offset implements Grid.
func (g *grid[T]) Offset() int {
	return g.ctrl.Offset()
}

// OnScroll implements Grid.
func (g *grid[T]) OnScroll(offset int) tea.Cmd {
	g.ctrl.SetOffset(offset)
	return g.reportScroll()
}

// ScrollTo implements Grid.
func (g *grid[T]) ScrollTo(index int, align window.Align) tea.Cmd {
	before := g.ctrl.Offset()
	if g.ctrl.ScrollTo(index, align) == before {
		return nil
	}
	return g.reportScroll()
}

// MoveDown implements Grid, scrolling down by the given number of lines.
func (g *grid[T]) MoveDown(lines int) tea.Cmd {
	return g.moveBy(lines)
}

// MoveUp implements Grid, scrolling up by the given number of lines.
func (g *grid[T]) MoveUp(lines int) tea.Cmd {
	return g.moveBy(-lines)
}

// GoToTop implements Grid.
func (g *grid[T]) GoToTop() tea.Cmd {
	return g.OnScroll(0)
}

// GoToBottom implements Grid.
func (g *grid[T]) GoToBottom() tea.Cmd {
	return g.OnScroll(g.maxOffset())
}

func (g *grid[T]) maxOffset() int {
	return max(0, g.ctrl.TotalExtent()-g.height)
}

func (g *grid[T]) moveBy(delta int) tea.Cmd {
	before := g.ctrl.Offset()
	next := ordered.Clamp(before+delta, 0, g.maxOffset())
	if next == before {
		return nil
	}
	g.ctrl.SetOffset(next)
	return g.reportScroll()
}

func (g *grid[T]) clampAndReport() tea.Cmd {
	next := ordered.Clamp(g.ctrl.Offset(), 0, g.maxOffset())
	g.ctrl.SetOffset(next)
	return g.reportScroll()
}

func (g *grid[T]) reportScroll() tea.Cmd {
	msg := list.ScrollMsg{
		Offset:      g.ctrl.Offset(),
		TotalExtent: g.ctrl.TotalExtent(),
		Viewport:    g.height,
	}
	return func() tea.Msg { return msg }
}

// SetSize implements layout.Sizeable. The width is the grid's container
// measurement: the first call resolves the unmeasured state.
func (g *grid[T]) SetSize(width, height int) tea.Cmd {
	if width != g.width {
		g.cache.Clear()
	}
	g.width = width
	g.height = height
	g.ctrl.SetContainerWidth(max(0, width))
	g.ctrl.SetViewport(max(0, height))
	return g.clampAndReport()
}

// GetSize implements layout.Sizeable.
func (g *grid[T]) GetSize() (int, int) {
	return g.width, g.height
}

// Focus implements layout.Focusable.
func (g *grid[T]) Focus() tea.Cmd {
	g.focused = true
	return nil
}

// Blur implements layout.Focusable.
func (g *grid[T]) Blur() tea.Cmd {
	g.focused = false
	return nil
}

// IsFocused implements layout.Focusable.
func (g *grid[T]) IsFocused() bool {
	return g.focused
}
