package app

import (
	"time"

	"chute-cli/internal/config"
	"chute-cli/internal/model"
)

type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyBackTab
)

// KeyEvent is a key press as the app sees it: the physical key plus the
// action the keymap resolved it to (ActionNone when unbound).
type KeyEvent struct {
	Kind   KeyKind
	Code   KeyCode
	Rune   rune
	Action config.Action
}

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerDrag
)

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

type TargetKind int

const (
	TargetNone TargetKind = iota
	// TargetRow is a task row. Row may lie outside the list when the
	// pointer is above or below it.
	TargetRow
	TargetCategoryDot
	TargetTab
	TargetHeader
	TargetSlider
	TargetDatePrev
	TargetDateNext
	TargetPopupOK
	TargetPopupCancel
	TargetCategoryOption
)

type HeaderButton int

const (
	HeaderNew HeaderButton = iota
	HeaderStart
	HeaderStop
	HeaderFinish
	HeaderDelete
)

var HeaderButtons = []HeaderButton{HeaderNew, HeaderStart, HeaderStop, HeaderFinish, HeaderDelete}

func (b HeaderButton) String() string {
	switch b {
	case HeaderStart:
		return "Start"
	case HeaderStop:
		return "Stop"
	case HeaderFinish:
		return "Finish"
	case HeaderDelete:
		return "Delete"
	default:
		return "New"
	}
}

// Target is what the pointer is over, as resolved by the layout.
type Target struct {
	Kind     TargetKind
	Row      int
	Tab      View
	Header   HeaderButton
	Category model.Category
	// X is the offset into the slider track and Width its length in cells.
	X     int
	Width int
}

type PointerEvent struct {
	Kind   PointerKind
	Button Button
	Target Target
	At     time.Time
}

// Slider maps a quantized value range onto a track of cells.
type Slider struct {
	Min, Max, Step int
}

var (
	EstimateSlider  = Slider{Min: 0, Max: 240, Step: 5}
	StartTimeSlider = Slider{Min: 0, Max: 24*60 - 1, Step: 5}
)

func (s Slider) steps() int { return max(1, (s.Max-s.Min)/s.Step) }

func (s Slider) Clamp(v int) int {
	return min(s.Max, max(s.Min, v))
}

// ValueAt returns the value for cell x of a track width cells wide,
// rounded to the nearest step.
func (s Slider) ValueAt(x, width int) int {
	if width <= 1 {
		return s.Min
	}
	x = min(width-1, max(0, x))
	pos := (x*s.steps() + (width-1)/2) / (width - 1)
	return s.Clamp(s.Min + pos*s.Step)
}

// OffsetFor is the track cell that shows value v.
func (s Slider) OffsetFor(v, width int) int {
	if width <= 1 {
		return 0
	}
	pos := (s.Clamp(v) - s.Min) / s.Step
	return min(width-1, pos*(width-1)/s.steps())
}
