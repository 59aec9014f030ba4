package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/jscyril/vinyl_player/internal/config"
)

// KeyMap binds the transport and mixer controls.
type KeyMap struct {
	PlayPause  key.Binding
	Play       key.Binding
	Pause      key.Binding
	Stop       key.Binding
	Next       key.Binding
	Prev       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	Seek       key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func bind(k, desc string, extra ...string) key.Binding {
	keys := append([]string{}, extra...)
	if k != "" {
		keys = append([]string{k}, keys...)
	}
	label := k
	if label == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// NewKeyMap builds bindings from the configured keys.
func NewKeyMap(cfg config.KeyMap) KeyMap {
	return KeyMap{
		PlayPause:  bind(cfg.PlayPause, "play/pause"),
		Play:       bind(cfg.Play, "play"),
		Pause:      bind(cfg.Pause, "pause"),
		Stop:       bind(cfg.Stop, "stop"),
		Next:       bind(cfg.Next, "next"),
		Prev:       bind(cfg.Previous, "prev"),
		VolumeUp:   bind(cfg.VolumeUp, "vol+", "="),
		VolumeDown: bind(cfg.VolumeDown, "vol-"),
		PanLeft:    bind(cfg.PanLeft, "pan left"),
		PanRight:   bind(cfg.PanRight, "pan right"),
		Seek: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "seek"),
		),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play selected")),
		Help:   bind(cfg.Help, "help"),
		Quit:   bind(cfg.Quit, "quit", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Stop, k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Play, k.Pause, k.Stop},
		{k.Next, k.Prev, k.Up, k.Down, k.Select},
		{k.VolumeUp, k.VolumeDown, k.PanLeft, k.PanRight, k.Seek},
		{k.Help, k.Quit},
	}
}
