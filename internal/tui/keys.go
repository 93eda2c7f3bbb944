package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	// ActionInput forwards the key to the search input.
	ActionInput
	ActionQuit
	ActionToggleHelp
	ActionFocusInput
	ActionBlurInput
	ActionClear
	ActionCursorUp
	ActionCursorDown
	ActionSelect
	ActionScrollDown
	ActionScrollUp
	ActionAdjustLeftNarrower
	ActionAdjustLeftWider
)

// KeyHandler maps keys to actions. While browsing (input unfocused) a
// numeric prefix repeats the next scroll.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its count.
func (k *KeyHandler) Handle(msg tea.KeyMsg, inputFocused bool) (KeyAction, int) {
	key := msg.String()
	if inputFocused {
		k.keyBuffer = ""
		return inputAction(key), 1
	}

	if isNumericKey(key) && (k.keyBuffer != "" || key != "0") {
		k.keyBuffer += key
		return ActionNone, 0
	}

	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
			count = n
		}
	}
	k.keyBuffer = ""
	return browseAction(key), count
}

// KeyBuffer returns the pending numeric prefix.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer drops the pending numeric prefix.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func inputAction(key string) KeyAction {
	switch key {
	case "ctrl+c":
		return ActionQuit
	case "f1":
		return ActionToggleHelp
	case "esc", "tab":
		return ActionBlurInput
	case "ctrl+l":
		return ActionClear
	case "up", "ctrl+p":
		return ActionCursorUp
	case "down", "ctrl+n":
		return ActionCursorDown
	case "enter":
		return ActionSelect
	default:
		return ActionInput
	}
}

func browseAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "f1", "?":
		return ActionToggleHelp
	case "/", "tab", "i":
		return ActionFocusInput
	case "ctrl+l":
		return ActionClear
	case "j", "down", "ctrl+e":
		return ActionScrollDown
	case "k", "up", "ctrl+y":
		return ActionScrollUp
	case "<":
		return ActionAdjustLeftNarrower
	case ">":
		return ActionAdjustLeftWider
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
