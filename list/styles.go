package list

import "charm.land/lipgloss/v2"

// Styles holds the list's lipgloss styles.
type Styles struct {
	// Item wraps every rendered item view.
	Item lipgloss.Style
	// Empty wraps the empty-state message.
	Empty lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Item:  lipgloss.NewStyle(),
		Empty: lipgloss.NewStyle().Faint(true),
	}
}
