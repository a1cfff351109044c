// Package demo hosts the interactive showcase for the windowing components:
// a paginated list and a grid, each virtualized over a growing collection,
// with a threshold loader fetching further pages as the user nears the end.
package demo

import (
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/charmbracelet/vport/grid"
	"github.com/charmbracelet/vport/list"
	"github.com/charmbracelet/vport/loader"
	"github.com/charmbracelet/vport/window"
)

// Mode selects which component the demo drives.
type Mode int

const (
	ModeList Mode = iota
	ModeGrid
)

// Config carries the knobs exposed as CLI flags.
type Config struct {
	Mode       Mode
	PageSize   int
	MaxPages   int
	ItemHeight int
	Overscan   int
	ItemWidth  int
	Gap        int
	Threshold  int
	FetchDelay time.Duration
}

type item struct {
	id    string
	title string
}

type (
	loadRequestMsg struct{}
	pageLoadedMsg  struct{ items []item }
)

// Model is the demo application.
type Model struct {
	cfg   Config
	items []item
	pages int

	lst   list.List[item]
	grd   grid.Grid[item]
	ldr   *loader.Model
	flags *window.Flags

	width  int
	height int
}

// New builds the demo model for the given configuration.
func New(cfg Config) (*Model, error) {
	m := &Model{
		cfg:   cfg,
		flags: &window.Flags{HasMore: true},
	}
	m.items = m.makePage()
	m.pages = 1

	renderListItem := func(it item, index int, _ window.Placement) string {
		return fmt.Sprintf("%4d  %s", index, it.title)
	}
	renderCell := func(it item, index int, _ window.Placement) string {
		return fmt.Sprintf("#%03d %s", index, it.id[:8])
	}
	keyFunc := func(it item, _ int) string { return it.id }

	switch cfg.Mode {
	case ModeGrid:
		m.grd = grid.New(window.Slice[item](m.items),
			grid.WithItemSize[item](cfg.ItemWidth, cfg.ItemHeight),
			grid.WithGap[item](cfg.Gap),
			grid.WithOverscan[item](cfg.Overscan),
			grid.WithRenderFunc(renderCell),
			grid.WithKeyFunc[item](keyFunc),
			grid.WithEmptyMessage[item]("Nothing loaded yet."),
			grid.WithEnableMouse[item](),
		)
	default:
		m.lst = list.New(window.Slice[item](m.items),
			list.WithItemHeight[item](cfg.ItemHeight),
			list.WithOverscan[item](cfg.Overscan),
			list.WithRenderFunc(renderListItem),
			list.WithKeyFunc[item](keyFunc),
			list.WithEmptyMessage[item]("Nothing loaded yet."),
			list.WithEnableMouse[item](),
		)
	}

	ldr, err := loader.New(cfg.Threshold, m.flags, func() tea.Msg { return loadRequestMsg{} })
	if err != nil {
		return nil, err
	}
	m.ldr = ldr
	return m, nil
}

func (m *Model) makePage() []item {
	page := make([]item, m.cfg.PageSize)
	base := len(m.items)
	for i := range page {
		page[i] = item{
			id:    uuid.NewString(),
			title: fmt.Sprintf("Entry %d", base+i),
		}
	}
	return page
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.cfg.Mode == ModeGrid {
		return m.grd.Init()
	}
	return m.lst.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// A line each for the header and the loader footer.
		return m, m.setComponentSize(msg.Width, max(0, msg.Height-2))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case loadRequestMsg:
		// Flip the in-flight flag before the fetch starts; the loader only
		// reads it.
		m.flags.Loading = true
		slog.Info("Fetching next page", "page", m.pages+1, "items", len(m.items))
		return m, tea.Tick(m.cfg.FetchDelay, func(time.Time) tea.Msg {
			return pageLoadedMsg{items: m.makePage()}
		})

	case pageLoadedMsg:
		m.items = append(m.items, msg.items...)
		m.pages++
		m.flags.Loading = false
		m.flags.HasMore = m.pages < m.cfg.MaxPages
		slog.Info("Page loaded", "page", m.pages, "items", len(m.items), "has_more", m.flags.HasMore)
		return m, m.setSource()

	case list.ScrollMsg:
		var cmd tea.Cmd
		m.ldr, cmd = m.ldr.Update(msg)
		return m, cmd
	}

	return m, m.forward(msg)
}

func (m *Model) setComponentSize(width, height int) tea.Cmd {
	if m.cfg.Mode == ModeGrid {
		return m.grd.SetSize(width, height)
	}
	return m.lst.SetSize(width, height)
}

func (m *Model) setSource() tea.Cmd {
	if m.cfg.Mode == ModeGrid {
		return m.grd.SetSource(window.Slice[item](m.items))
	}
	return m.lst.SetSource(window.Slice[item](m.items))
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.cfg.Mode == ModeGrid {
		m.grd, cmd = m.grd.Update(msg)
	} else {
		m.lst, cmd = m.lst.Update(msg)
	}
	cmds = append(cmds, cmd)
	m.ldr, cmd = m.ldr.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	if m.width <= 0 || m.height <= 0 {
		return view
	}

	var header, body string
	if m.cfg.Mode == ModeGrid {
		r := m.grd.VisibleRange()
		header = headerStyle.Render(fmt.Sprintf(
			"vport grid — %d items, %d cols, showing [%d..%d]",
			len(m.items), m.grd.Columns(), r.Start, r.End))
		body = m.grd.View()
	} else {
		r := m.lst.VisibleRange()
		header = headerStyle.Render(fmt.Sprintf(
			"vport list — %d items, showing [%d..%d]",
			len(m.items), r.Start, r.End))
		body = m.lst.View()
	}

	footer := m.ldr.View()
	if footer == "" {
		footer = footerStyle.Render("↑/↓ scroll · pgup/pgdn page · g/G top/bottom · q quit")
	}

	view.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
	return view
}
