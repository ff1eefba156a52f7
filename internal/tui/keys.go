package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Tab       key.Binding
	Followers key.Binding
	Following key.Binding
	Follow    key.Binding
	Unfollow  key.Binding
	Chat      key.Binding
	Reload    key.Binding
	Ignore    key.Binding
	Accept    key.Binding
	Search    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		Followers: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "followers")),
		Following: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "following")),
		Follow:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow")),
		Unfollow:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unfollow")),
		Chat:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chat")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Ignore:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ignore 24h")),
		Accept:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Open, k.Search, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Open},
		{k.Tab, k.Followers, k.Following, k.Search},
		{k.Follow, k.Unfollow, k.Chat, k.Reload, k.Ignore, k.Accept},
		{k.Back, k.Quit},
	}
}
