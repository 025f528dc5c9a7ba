package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-robbo/internal/core"
)

// binding ties a key binding to the action it produces.
type binding struct {
	key    key.Binding
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	game []binding

	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuSelect key.Binding
	MenuBack   key.Binding
	Quit       key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	bind := func(a core.Action, help string, keys ...string) binding {
		return binding{key: key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help)), action: a}
	}
	return &KeyMapper{
		game: []binding{
			bind(core.ActionUp, "up", "w", "up"),
			bind(core.ActionDown, "down", "s", "down"),
			bind(core.ActionLeft, "left", "a", "left"),
			bind(core.ActionRight, "right", "d", "right"),
			bind(core.ActionFire, "fire", " ", "f"),
			bind(core.ActionBomb, "bomb", "x"),
			bind(core.ActionRestart, "restart", "r"),
			bind(core.ActionConfirm, "confirm", "enter"),
			bind(core.ActionBack, "back", "esc", "b"),
			bind(core.ActionPause, "pause", "p"),
		},
		MenuUp:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("up", "navigate")),
		MenuDown:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("down", "navigate")),
		MenuSelect: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		MenuBack:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.key) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.MenuUp):
		return MenuActionUp
	case key.Matches(msg, km.MenuDown):
		return MenuActionDown
	case key.Matches(msg, km.MenuSelect):
		return MenuActionSelect
	case key.Matches(msg, km.MenuBack):
		return MenuActionBack
	}
	return MenuActionNone
}

// menuHelp implements help.KeyMap for the level picker.
type menuHelp struct{ km *KeyMapper }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.MenuUp, h.km.MenuSelect, h.km.MenuBack, h.km.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
