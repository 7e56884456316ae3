package app

import "chute-cli/internal/model"

type View int

const (
	ViewPast View = iota
	ViewToday
	ViewFuture
)

// Views lists the tabs in display order.
var Views = []View{ViewPast, ViewToday, ViewFuture}

func (v View) Next() View { return Views[(int(v)+1)%len(Views)] }
func (v View) Prev() View { return Views[(int(v)+len(Views)-1)%len(Views)] }

func (v View) String() string {
	switch v {
	case ViewPast:
		return "Past"
	case ViewFuture:
		return "Future"
	default:
		return "Today"
	}
}

// Purpose tells a text entry what it is creating.
type Purpose int

const (
	PurposeNewTask Purpose = iota
	PurposeInterrupt
)

func (p Purpose) defaultTitle() string {
	if p == PurposeInterrupt {
		return "Interrupt"
	}
	return "New Task"
}

// InterruptEstimateMin is the estimate an interrupt starts with.
const InterruptEstimateMin = 15

// Mode is the interaction mode. Exactly one is current; the concrete types
// below are the only implementations.
type Mode interface {
	isMode()
}

type Normal struct{}

type TextInput struct {
	Buffer  []rune
	Purpose Purpose
}

type NewTaskEstimate struct {
	Title   string
	Purpose Purpose
	Minutes int
	Date    model.Date
}

type EstimateEdit struct {
	TaskIndex int
	Minutes   int
	Date      model.Date
}

type StartTimeEdit struct {
	TaskIndex int
	Minutes   int
}

type CommandPalette struct {
	Buffer []rune
}

type CategoryPicker struct {
	TaskIndex   int
	Highlighted model.Category
}

type ConfirmDelete struct {
	TaskIndex int
}

type Dragging struct {
	SourceIndex int
}

func (Normal) isMode()          {}
func (TextInput) isMode()       {}
func (NewTaskEstimate) isMode() {}
func (EstimateEdit) isMode()    {}
func (StartTimeEdit) isMode()   {}
func (CommandPalette) isMode()  {}
func (CategoryPicker) isMode()  {}
func (ConfirmDelete) isMode()   {}
func (Dragging) isMode()        {}

// IsPopup reports whether m is shown as a modal popup.
func IsPopup(m Mode) bool {
	switch m.(type) {
	case Normal, Dragging, nil:
		return false
	}
	return true
}

// Effect is work the caller performs on the app's behalf after an event.
type Effect interface {
	isEffect()
}

// EffectJournal asks for a lifecycle change to be recorded.
type EffectJournal struct {
	Activity model.Activity
}

// EffectPersistDayStart asks for a new day start to be written to the config.
type EffectPersistDayStart struct {
	Minutes int
}

func (EffectJournal) isEffect()         {}
func (EffectPersistDayStart) isEffect() {}
