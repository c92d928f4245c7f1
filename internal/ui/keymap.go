package ui

import (
	"fmt"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action is something a key press asks the window to do.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionSave
	ActionPDF
	ActionCopy
	ActionPasteBackground
	ActionClearBackground
	ActionPresetSmall
	ActionPresetMedium
	ActionPresetLarge
	ActionNextColor
	ActionPrevColor
	ActionToggleStyle
	ActionQuit
)

var actionNames = map[Action]string{
	ActionUndo:            "undo",
	ActionSave:            "save",
	ActionPDF:             "pdf",
	ActionCopy:            "copy",
	ActionPasteBackground: "paste background",
	ActionClearBackground: "clear background",
	ActionPresetSmall:     "small brush",
	ActionPresetMedium:    "medium brush",
	ActionPresetLarge:     "large brush",
	ActionNextColor:       "next colour",
	ActionPrevColor:       "previous colour",
	ActionToggleStyle:     "toggle line style",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Binding pairs a shortcut with its action and a label for help output.
type Binding struct {
	Shortcut KeyShortcut
	Label    string
	Action   Action
}

var bindings = []Binding{
	{KeyShortcut{Rune: 'u'}, "U", ActionUndo},
	{KeyShortcut{Rune: 'z', Modifiers: key.ModControl}, "Ctrl+Z", ActionUndo},
	{KeyShortcut{Rune: 's'}, "S", ActionSave},
	{KeyShortcut{Rune: 's', Modifiers: key.ModControl}, "Ctrl+S", ActionSave},
	{KeyShortcut{Rune: 'p'}, "P", ActionPDF},
	{KeyShortcut{Rune: 'c'}, "C", ActionCopy},
	{KeyShortcut{Rune: 'c', Modifiers: key.ModControl}, "Ctrl+C", ActionCopy},
	{KeyShortcut{Rune: 'v'}, "V", ActionPasteBackground},
	{KeyShortcut{Rune: 'v', Modifiers: key.ModControl}, "Ctrl+V", ActionPasteBackground},
	{KeyShortcut{Rune: 'x'}, "X", ActionClearBackground},
	{KeyShortcut{Rune: '1'}, "1", ActionPresetSmall},
	{KeyShortcut{Rune: '2'}, "2", ActionPresetMedium},
	{KeyShortcut{Rune: '3'}, "3", ActionPresetLarge},
	{KeyShortcut{Rune: ']'}, "]", ActionNextColor},
	{KeyShortcut{Rune: '['}, "[", ActionPrevColor},
	{KeyShortcut{Rune: 'l'}, "L", ActionToggleStyle},
	{KeyShortcut{Rune: 'q'}, "Q", ActionQuit},
	{KeyShortcut{Rune: -1, Code: key.CodeEscape}, "Esc", ActionQuit},
}

var keyboardAction = func() map[KeyShortcut]Action {
	m := make(map[KeyShortcut]Action, len(bindings))
	for _, b := range bindings {
		m[b.Shortcut] = b.Action
	}
	return m
}()

// Bindings returns the keyboard shortcuts in display order.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// Lookup maps a key event to an action. Only presses count; letters match
// regardless of case and Shift is ignored.
func Lookup(e key.Event) Action {
	if e.Direction != key.DirPress {
		return ActionNone
	}
	mods := e.Modifiers &^ key.ModShift
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
	if e.Rune <= 0 {
		ks = KeyShortcut{Rune: -1, Code: e.Code, Modifiers: mods}
	}
	return keyboardAction[ks]
}
