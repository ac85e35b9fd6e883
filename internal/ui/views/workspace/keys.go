package workspace

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard bindings for the query workspace.
type KeyMap struct {
	Execute    key.Binding
	SwitchPane key.Binding

	// Results navigation
	Up       key.Binding
	Down     key.Binding
	ColLeft  key.Binding
	ColRight key.Binding

	// Horizontal column scroll
	ScrollLeft  key.Binding
	ScrollRight key.Binding

	// Pagination
	NextPage key.Binding
	PrevPage key.Binding
	JumpRow  key.Binding

	// Column width
	Widen  key.Binding
	Narrow key.Binding

	// Copy actions
	CopyCell key.Binding
	CopyRow  key.Binding
}

// DefaultKeyMap returns the default workspace key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Execute: key.NewBinding(
			key.WithKeys("f5", "ctrl+e"),
			key.WithHelp("F5", "execute query"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "row down"),
		),
		ColLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "column left"),
		),
		ColRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "column right"),
		),

		ScrollLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "scroll columns left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "scroll columns right"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "previous page"),
		),
		JumpRow: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "jump to row"),
		),

		Widen: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "widen column"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "narrow column"),
		),

		CopyCell: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cell"),
		),
		CopyRow: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy row as JSON"),
		),
	}
}
