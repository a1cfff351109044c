// Package list implements a virtualized single-axis list component for
// Bubble Tea. Only the items near the visible viewport are ever rendered;
// everything else exists solely as an index range.
package list

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/charmbracelet/vport/internal/csync"
	"github.com/charmbracelet/vport/layout"
	"github.com/charmbracelet/vport/window"
)

// RenderFunc produces the view for a single item. It must be pure with
// respect to the list: the list may call it at any time and caches its
// output by item key.
type RenderFunc[T any] func(item T, index int, placement window.Placement) string

// KeyFunc derives a stable identity for an item, used as the render cache
// key. The default uses the index.
type KeyFunc[T any] func(item T, index int) string

// VisibleItem pairs an item with its index and absolute placement.
type VisibleItem[T any] struct {
	Item      T
	Index     int
	Placement window.Placement
}

// ScrollMsg is published after every offset change so collaborators (a
// threshold loader, a scrollbar) can observe the scroll position.
type ScrollMsg struct {
	Offset      int
	TotalExtent int
	Viewport    int
}

// List is a virtualized list over a window.Source. It owns scroll state and
// range computation; items are rendered through a caller-supplied callback.
type List[T any] interface {
	layout.Sizeable
	layout.Focusable

	Init() tea.Cmd
	Update(tea.Msg) (List[T], tea.Cmd)
	View() string

	SetSource(window.Source[T]) tea.Cmd
	Source() window.Source[T]
	Empty() bool

	VisibleRange() window.Range
	VisibleItems() []VisibleItem[T]
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
	itemExtent   int
	overscan     int
	renderFunc   RenderFunc[T]
	keyFunc      KeyFunc[T]
	keyMap       KeyMap
	styles       Styles
	emptyMessage string
	focused      bool
	enableMouse  bool
}

// Option configures a List.
type Option[T any] func(*confOptions[T])

// WithItemHeight sets the fixed height of every item, in lines.
func WithItemHeight[T any](lines int) Option[T] {
	return func(o *confOptions[T]) {
		o.itemExtent = lines
	}
}

// WithOverscan sets how many extra items to materialize beyond the visible
// range on each side.
func WithOverscan[T any](overscan int) Option[T] {
	return func(o *confOptions[T]) {
		o.overscan = overscan
	}
}

// WithRenderFunc sets the item render callback.
func WithRenderFunc[T any](fn RenderFunc[T]) Option[T] {
	return func(o *confOptions[T]) {
		o.renderFunc = fn
	}
}

// WithKeyFunc sets the stable-identity function used for render caching.
func WithKeyFunc[T any](fn KeyFunc[T]) Option[T] {
	return func(o *confOptions[T]) {
		o.keyFunc = fn
	}
}

// WithKeyMap sets the key bindings.
func WithKeyMap[T any](keyMap KeyMap) Option[T] {
	return func(o *confOptions[T]) {
		o.keyMap = keyMap
	}
}

// WithStyles sets the list styles.
func WithStyles[T any](styles Styles) Option[T] {
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

type list[T any] struct {
	confOptions[T]

	ctrl   *window.Controller
	source window.Source[T]

	width  int
	height int

	// Rendered item views keyed by item key; dropped wholesale when the
	// source or the width changes.
	cache *csync.VersionedMap[string, string]
}

// New returns a virtualized list over source. Geometry options are a caller
// contract: New panics with ErrInvalidGeometry when the item height is not
// positive or the overscan is negative, since that indicates a programming
// error upstream.
func New[T any](source window.Source[T], opts ...Option[T]) List[T] {
	l := &list[T]{
		confOptions: confOptions[T]{
			itemExtent:   1,
			keyMap:       DefaultKeyMap(),
			styles:       DefaultStyles(),
			emptyMessage: "No items.",
			focused:      true,
		},
		source: source,
		cache:  csync.NewVersionedMap[string, string](),
	}
	for _, opt := range opts {
		opt(&l.confOptions)
	}
	if l.renderFunc == nil {
		l.renderFunc = func(item T, _ int, _ window.Placement) string {
			return fmt.Sprintf("%v", item)
		}
	}
	if l.keyFunc == nil {
		l.keyFunc = func(_ T, index int) string {
			return fmt.Sprintf("%d", index)
		}
	}

	geo := window.Geometry{ItemExtent: l.itemExtent, Overscan: l.overscan}
	ctrl, err := window.NewController(geo, sourceLen(source))
	if err != nil {
		panic(err)
	}
	l.ctrl = ctrl
	return l
}

func sourceLen[T any](s window.Source[T]) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

// Init implements List.
func (l *list[T]) Init() tea.Cmd {
	return nil
}

// Update implements List.
func (l *list[T]) Update(msg tea.Msg) (List[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if l.enableMouse {
			return l, l.handleMouseWheel(msg)
		}
	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}
		switch {
		case key.Matches(msg, l.keyMap.Down):
			return l, l.MoveDown(l.itemExtent)
		case key.Matches(msg, l.keyMap.Up):
			return l, l.MoveUp(l.itemExtent)
		case key.Matches(msg, l.keyMap.HalfPageDown):
			return l, l.MoveDown(l.height / 2)
		case key.Matches(msg, l.keyMap.HalfPageUp):
			return l, l.MoveUp(l.height / 2)
		case key.Matches(msg, l.keyMap.PageDown):
			return l, l.MoveDown(l.height)
		case key.Matches(msg, l.keyMap.PageUp):
			return l, l.MoveUp(l.height)
		case key.Matches(msg, l.keyMap.Home):
			return l, l.GoToTop()
		case key.Matches(msg, l.keyMap.End):
			return l, l.GoToBottom()
		}
	}
	return l, nil
}

func (l *list[T]) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseWheelDown:
		return l.MoveDown(l.itemExtent)
	case tea.MouseWheelUp:
		return l.MoveUp(l.itemExtent)
	}
	return nil
}

// View implements List. Only the lines inside the viewport are produced;
// the empty state has its own render path.
func (l *list[T]) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}
	if l.Empty() {
		return l.styles.Empty.Render(l.emptyMessage)
	}

	offset := l.ctrl.Offset()
	lines := make([]string, l.height)
	for _, vi := range l.VisibleItems() {
		view := l.renderedItem(vi)
		itemLines := strings.Split(view, "\n")
		for li := range l.itemExtent {
			y := vi.Placement.Top + li - offset
			if y < 0 || y >= l.height {
				continue
			}
			if li < len(itemLines) {
				lines[y] = itemLines[li]
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (l *list[T]) renderedItem(vi VisibleItem[T]) string {
	k := l.keyFunc(vi.Item, vi.Index)
	if view, ok := l.cache.Get(k); ok {
		return view
	}
	view := l.styles.Item.Render(l.renderFunc(vi.Item, vi.Index, vi.Placement))
	l.cache.Set(k, view)
	return view
}

// SetSource implements List.
func (l *list[T]) SetSource(source window.Source[T]) tea.Cmd {
	l.source = source
	l.ctrl.SetCount(sourceLen(source))
	l.cache.Clear()
	return l.clampAndReport()
}

// Source implements List.
func (l *list[T]) Source() window.Source[T] {
	return l.source
}

// Empty implements List. This is the distinct empty-collection signal, not
// merely an empty visible range.
func (l *list[T]) Empty() bool {
	return l.ctrl.Empty()
}

// VisibleRange implements List.
func (l *list[T]) VisibleRange() window.Range {
	return l.ctrl.VisibleRange()
}

// VisibleItems implements List. Indices whose source entry is missing are
// skipped; sparse collections are a valid state, not an error.
func (l *list[T]) VisibleItems() []VisibleItem[T] {
	r := l.ctrl.VisibleRange()
	if r.Empty() || l.source == nil {
		return nil
	}
	items := make([]VisibleItem[T], 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		item, ok := l.source.At(i)
		if !ok {
			continue
		}
		items = append(items, VisibleItem[T]{
			Item:      item,
			Index:     i,
			Placement: l.ctrl.PlacementFor(i),
		})
	}
	return items
}

// IsIndexVisible implements List.
func (l *list[T]) IsIndexVisible(index int) bool {
	return l.ctrl.IsIndexVisible(index)
}

// TotalExtent implements List.
func (l *list[T]) TotalExtent() int {
	return l.ctrl.TotalExtent()
}

// Offset implements List.
func (l *list[T]) Offset() int {
	return l.ctrl.Offset()
}

// OnScroll implements List: the handler to wire to the host's scroll
// signal.
func (l *list[T]) OnScroll(offset int) tea.Cmd {
	l.ctrl.SetOffset(offset)
	return l.reportScroll()
}

// ScrollTo implements List.
func (l *list[T]) ScrollTo(index int, align window.Align) tea.Cmd {
	before := l.ctrl.Offset()
	if l.ctrl.ScrollTo(index, align) == before {
		return nil
	}
	return l.reportScroll()
}

// MoveDown implements List, scrolling down by the given number of lines.
func (l *list[T]) MoveDown(lines int) tea.Cmd {
	return l.moveBy(lines)
}

// MoveUp implements List, scrolling up by the given number of lines.
func (l *list[T]) MoveUp(lines int) tea.Cmd {
	return l.moveBy(-lines)
}

// GoToTop implements List.
func (l *list[T]) GoToTop() tea.Cmd {
	return l.OnScroll(0)
}

// GoToBottom implements List.
func (l *list[T]) GoToBottom() tea.Cmd {
	return l.OnScroll(l.maxOffset())
}

func (l *list[T]) maxOffset() int {
	return max(0, l.ctrl.TotalExtent()-l.height)
}

func (l *list[T]) moveBy(delta int) tea.Cmd {
	before := l.ctrl.Offset()
	next := ordered.Clamp(before+delta, 0, l.maxOffset())
	if next == before {
		return nil
	}
	l.ctrl.SetOffset(next)
	return l.reportScroll()
}

func (l *list[T]) clampAndReport() tea.Cmd {
	next := ordered.Clamp(l.ctrl.Offset(), 0, l.maxOffset())
	l.ctrl.SetOffset(next)
	return l.reportScroll()
}

func (l *list[T]) reportScroll() tea.Cmd {
	msg := ScrollMsg{
		Offset:      l.ctrl.Offset(),
		TotalExtent: l.ctrl.TotalExtent(),
		Viewport:    l.height,
	}
	return func() tea.Msg { return msg }
}

// SetSize implements layout.Sizeable.
func (l *list[T]) SetSize(width, height int) tea.Cmd {
	if width != l.width {
		l.cache.Clear()
	}
	l.width = width
	l.height = height
	l.ctrl.SetViewport(max(0, height))
	return l.clampAndReport()
}

// GetSize implements layout.Sizeable.
func (l *list[T]) GetSize() (int, int) {
	return l.width, l.height
}

// Focus implements layout.Focusable.
func (l *list[T]) Focus() tea.Cmd {
	l.focused = true
	return nil
}

// Blur implements layout.Focusable.
func (l *list[T]) Blur() tea.Cmd {
	l.focused = false
	return nil
}

// IsFocused implements layout.Focusable.
func (l *list[T]) IsFocused() bool {
	return l.focused
}
