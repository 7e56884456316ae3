package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a key resolves to in normal navigation.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionAddTask
	ActionAddInterrupt
	ActionStartOrResume
	ActionFinishActive
	ActionPopup
	ActionDelete
	ActionReorderUp
	ActionReorderDown
	ActionEstimatePlus
	ActionPostpone
	ActionBringToToday
	ActionViewNext
	ActionViewPrev
	ActionSelectUp
	ActionSelectDown
	ActionToggleBlocks
	ActionCategoryCycle
	ActionCategoryPicker
	ActionCommand
	ActionHelp
)

type actionInfo struct {
	action   Action
	name     string
	help     string
	defaults []string
}

// actionTable fixes both the config key names and the resolution order.
var actionTable = []actionInfo{
	{ActionQuit, "quit", "quit", []string{"q"}},
	{ActionAddTask, "add_task", "new task", []string{"i"}},
	{ActionAddInterrupt, "add_interrupt", "interrupt", []string{"Shift+i"}},
	{ActionStartOrResume, "start_or_resume", "start/pause", []string{"Enter"}},
	{ActionFinishActive, "finish_active", "finish", []string{"Shift+Enter", "f"}},
	{ActionPopup, "popup", "start time", []string{"Space"}},
	{ActionDelete, "delete", "delete", []string{"x"}},
	{ActionReorderUp, "reorder_up", "move up", []string{"["}},
	{ActionReorderDown, "reorder_down", "move down", []string{"]"}},
	{ActionEstimatePlus, "estimate_plus", "estimate", []string{"e"}},
	{ActionPostpone, "postpone", "postpone", []string{"p"}},
	{ActionBringToToday, "bring_to_today", "bring", []string{"b"}},
	{ActionViewNext, "view_next", "next view", []string{"Tab"}},
	{ActionViewPrev, "view_prev", "prev view", []string{"BackTab"}},
	{ActionSelectUp, "select_up", "up", []string{"Up", "k"}},
	{ActionSelectDown, "select_down", "down", []string{"Down", "j"}},
	{ActionToggleBlocks, "toggle_blocks", "calendar", []string{"t"}},
	{ActionCategoryCycle, "category_cycle", "category", []string{"c"}},
	{ActionCategoryPicker, "category_picker", "pick category", []string{"Shift+c"}},
	{ActionCommand, "command", "command", []string{":"}},
	{ActionHelp, "help", "keys", []string{"?"}},
}

// Actions lists every bindable action in resolution order.
func Actions() []Action {
	out := make([]Action, 0, len(actionTable))
	for _, info := range actionTable {
		out = append(out, info.action)
	}
	return out
}

func (a Action) String() string {
	for _, info := range actionTable {
		if info.action == a {
			return info.name
		}
	}
	return "none"
}

// KeySpecError reports a key spec that cannot be bound.
type KeySpecError struct {
	Spec   string
	Reason string
}

func (e KeySpecError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Spec, e.Reason)
}

// KeySpec is one parsed key chord, e.g. "Shift+c" or "Ctrl+x".
type KeySpec struct {
	Code  string // "enter", "tab", "up", ... or a single character
	Shift bool
	Ctrl  bool
	Alt   bool
}

var namedKeys = map[string]string{
	"enter":     "enter",
	"return":    "enter",
	"space":     " ",
	"tab":       "tab",
	"backtab":   "backtab",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"esc":       "esc",
	"escape":    "esc",
	"backspace": "backspace",
	"delete":    "delete",
	"home":      "home",
	"end":       "end",
}

// ParseKeySpec parses a chord. A bare uppercase letter means Shift plus the
// lowercase letter; Ctrl+letter is case-insensitive.
func ParseKeySpec(s string) (KeySpec, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return KeySpec{}, KeySpecError{Spec: raw, Reason: "empty"}
	}
	var ks KeySpec
	parts := strings.Split(s, "+")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) >= 2 {
		// "Ctrl++" style: the key itself is '+'.
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "shift":
			ks.Shift = true
		case "ctrl", "control":
			ks.Ctrl = true
		case "alt", "meta":
			ks.Alt = true
		case "":
		default:
			return KeySpec{}, KeySpecError{Spec: raw, Reason: "unsupported modifier " + m}
		}
	}
	keyPart = strings.TrimSpace(keyPart)
	if named, ok := namedKeys[strings.ToLower(keyPart)]; ok {
		ks.Code = named
	} else if r := []rune(keyPart); len(r) == 1 {
		c := r[0]
		if unicode.IsLetter(c) && unicode.IsUpper(c) && !ks.Ctrl {
			ks.Shift = true
			c = unicode.ToLower(c)
		}
		if ks.Ctrl {
			c = unicode.ToLower(c)
		}
		ks.Code = string(c)
	} else {
		return KeySpec{}, KeySpecError{Spec: raw, Reason: "unsupported key " + keyPart}
	}
	if ks.Code == "tab" && ks.Shift {
		ks.Code, ks.Shift = "backtab", false
	}
	return ks, nil
}

// TeaKey is the string bubbletea reports for this chord (tea.KeyMsg.String()).
func (k KeySpec) TeaKey() string {
	code := k.Code
	switch code {
	case "backtab":
		return "shift+tab"
	}
	isChar := len([]rune(code)) == 1
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift {
		if isChar && !k.Ctrl {
			code = strings.ToUpper(code)
		} else {
			b.WriteString("shift+")
		}
	}
	b.WriteString(code)
	return b.String()
}

// Label is the human form used in help text, e.g. "Shift+Enter" or "Space".
func (k KeySpec) Label() string {
	base := k.Code
	switch k.Code {
	case "enter":
		base = "Enter"
	case "tab":
		base = "Tab"
	case "backtab":
		return "Shift+Tab"
	case "up", "down", "left", "right", "esc", "backspace", "delete", "home", "end":
		base = strings.ToUpper(k.Code[:1]) + k.Code[1:]
	case " ":
		base = "Space"
	}
	var parts []string
	if k.Shift {
		parts = append(parts, "Shift")
	}
	if k.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if k.Alt {
		parts = append(parts, "Alt")
	}
	parts = append(parts, base)
	return strings.Join(parts, "+")
}

// KeyMap resolves key presses to actions.
type KeyMap struct {
	bindings map[Action]key.Binding
}

func newBinding(info actionInfo, specs []KeySpec) key.Binding {
	keys := make([]string, 0, len(specs))
	labels := make([]string, 0, len(specs))
	for _, ks := range specs {
		keys = append(keys, ks.TeaKey())
		labels = append(labels, ks.Label())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), info.help),
	)
}

func mustParseAll(specs []string) []KeySpec {
	out := make([]KeySpec, 0, len(specs))
	for _, s := range specs {
		ks, err := ParseKeySpec(s)
		if err != nil {
			panic(err)
		}
		out = append(out, ks)
	}
	return out
}

func DefaultKeyMap() KeyMap {
	km := KeyMap{bindings: map[Action]key.Binding{}}
	for _, info := range actionTable {
		km.bindings[info.action] = newBinding(info, mustParseAll(info.defaults))
	}
	return km
}

// Rebind replaces the keys for the action with the given config name.
func (km *KeyMap) Rebind(name string, specs []string) error {
	for _, info := range actionTable {
		if info.name != name {
			continue
		}
		parsed := make([]KeySpec, 0, len(specs))
		for _, s := range specs {
			ks, err := ParseKeySpec(s)
			if err != nil {
				return err
			}
			parsed = append(parsed, ks)
		}
		if km.bindings == nil {
			km.bindings = map[Action]key.Binding{}
		}
		km.bindings[info.action] = newBinding(info, parsed)
		return nil
	}
	return fmt.Errorf("unknown key action %q", name)
}

// ActionFor resolves msg, checking actions in table order.
func (km KeyMap) ActionFor(msg tea.KeyMsg) Action {
	for _, info := range actionTable {
		b, ok := km.bindings[info.action]
		if ok && key.Matches(msg, b) {
			return info.action
		}
	}
	return ActionNone
}

func (km KeyMap) Binding(a Action) key.Binding {
	return km.bindings[a]
}

// Label joins the labels bound to a, e.g. "Shift+Enter/f".
func (km KeyMap) Label(a Action) string {
	return km.bindings[a].Help().Key
}
