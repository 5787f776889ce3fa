package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings for the TUI. It implements help.KeyMap so
// the footer renders its help from the bindings themselves. Sort only
// documents the digit keys; tableModel decodes them with digitToCol.
type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Search   key.Binding
	Escape   key.Binding
	Sort     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Help     key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "poll now")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter table")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "sort column")),
	PrevPage: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev page")),
	NextPage: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next page")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Refresh},
		{k.Search, k.Escape, k.Sort},
		{k.PrevPage, k.NextPage},
		{k.Help, k.Quit},
	}
}
