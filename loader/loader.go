// Package loader implements a threshold-triggered pagination component: it
// watches scroll signals and fires a caller-supplied load command once the
// scroll position approaches the end of the loaded content.
package loader

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/charmbracelet/vport/list"
	"github.com/charmbracelet/vport/window"
)

// Styles holds the loader's lipgloss styles.
type Styles struct {
	Spinner   lipgloss.Style
	Loading   lipgloss.Style
	Exhausted lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Spinner:   lipgloss.NewStyle(),
		Loading:   lipgloss.NewStyle(),
		Exhausted: lipgloss.NewStyle().Faint(true),
	}
}

type confOptions struct {
	styles         Styles
	loadingLabel   string
	exhaustedLabel string
	spin           spinner.Spinner
}

// Option configures a Model.
type Option func(*confOptions)

// WithStyles sets the loader styles.
func WithStyles(styles Styles) Option {
	return func(o *confOptions) {
		o.styles = styles
	}
}

// WithLoadingLabel sets the label shown next to the spinner while a fetch
// is in flight.
func WithLoadingLabel(label string) Option {
	return func(o *confOptions) {
		o.loadingLabel = label
	}
}

// WithExhaustedLabel sets the label shown once there is nothing left to
// load. An empty label hides the exhausted state.
func WithExhaustedLabel(label string) Option {
	return func(o *confOptions) {
		o.exhaustedLabel = label
	}
}

// WithSpinner sets the spinner animation.
func WithSpinner(s spinner.Spinner) Option {
	return func(o *confOptions) {
		o.spin = s
	}
}

// Model wires a window.ThresholdLoader into a Bubble Tea program. It
// consumes list.ScrollMsg, fires the load command when the threshold is
// crossed, and renders a spinner while the externally-owned flags report a
// fetch in flight. The fetch itself, and flipping the flags when it
// resolves, stay entirely with the caller.
type Model struct {
	confOptions

	loader  *window.ThresholdLoader
	flags   *window.Flags
	loadCmd tea.Cmd
	spinner spinner.Model
	fires   int
}

// New returns a loader that fires loadCmd when the distance from the end of
// the scrolled content drops below threshold. The flags are externally
// owned: the caller sets Loading before its fetch runs and updates
// Loading/HasMore when it resolves.
func New(threshold int, flags *window.Flags, loadCmd tea.Cmd, opts ...Option) (*Model, error) {
	m := &Model{
		confOptions: confOptions{
			styles:         DefaultStyles(),
			loadingLabel:   "Loading more…",
			exhaustedLabel: "All items loaded.",
			spin:           spinner.Dot,
		},
		flags:   flags,
		loadCmd: loadCmd,
	}
	for _, opt := range opts {
		opt(&m.confOptions)
	}

	tl, err := window.NewThresholdLoader(threshold, flags, func() { m.fires++ })
	if err != nil {
		return nil, err
	}
	m.loader = tl

	m.spinner = spinner.New(
		spinner.WithSpinner(m.spin),
		spinner.WithStyle(m.styles.Spinner),
	)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Scroll messages drive the threshold check;
// spinner ticks keep the loading indicator animated while a fetch is in
// flight.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case list.ScrollMsg:
		if m.loader.OnScroll(msg.Offset, msg.TotalExtent, msg.Viewport) {
			return m, tea.Batch(m.loadCmd, m.spinner.Tick)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.flags.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model: a spinner while loading, a subdued label once
// exhausted, nothing otherwise.
func (m *Model) View() string {
	switch {
	case m.flags.Loading:
		return m.spinner.View() + m.styles.Loading.Render(m.loadingLabel)
	case !m.flags.HasMore && m.exhaustedLabel != "":
		return m.styles.Exhausted.Render(m.exhaustedLabel)
	default:
		return ""
	}
}

// Fires returns how many times the load command has been fired, for
// diagnostics.
func (m *Model) Fires() int {
	return m.fires
}

// Threshold returns the configured trigger distance.
func (m *Model) Threshold() int {
	return m.loader.Threshold()
}
