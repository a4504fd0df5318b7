package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Submit   key.Binding
	NewChat  key.Binding
	PrevConv key.Binding
	NextConv key.Binding
	Quit     key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	NewChat: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new chat"),
	),
	PrevConv: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous chat"),
	),
	NextConv: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next chat"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
