// Package layout defines the sizing and focus contracts shared by the
// windowing components.
package layout

import tea "charm.land/bubbletea/v2"

// Sizeable is a component whose dimensions are driven by its host.
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (width, height int)
}

// Focusable is a component that can gain and lose keyboard focus.
type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool
}
