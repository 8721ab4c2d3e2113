// Package confirm is the single confirmation dialog shared by every
// destructive or irreversible action.
package confirm

// Kind tags the dialog state.
type Kind int

const (
	Idle Kind = iota
	Pending
)

func (k Kind) String() string {
	if k == Pending {
		return "pending"
	}
	return "idle"
}

// Effect names what confirming the dialog does. Effects are plain values so
// the dialog state can be inspected, logged and compared.
type Effect int

const (
	// EffectNone is an informational notice; confirming only dismisses it.
	EffectNone Effect = iota
	EffectLogout
	EffectCheckout
)

func (e Effect) String() string {
	switch e {
	case EffectLogout:
		return "logout"
	case EffectCheckout:
		return "checkout"
	default:
		return "none"
	}
}

// closesOnConfirm reports whether the dialog hides as soon as the effect is
// handed out. Checkout keeps it open until its own success or failure branch
// calls Close.
func (e Effect) closesOnConfirm() bool {
	return e != EffectCheckout
}

// State is {Kind: Idle} or {Kind: Pending, Message, Effect}.
type State struct {
	Kind    Kind
	Message string
	Effect  Effect
}

// Visible reports whether a dialog is showing.
func (s State) Visible() bool {
	return s.Kind == Pending
}

// Request shows a dialog, replacing whatever was pending. The replaced effect
// is dropped and can never fire.
func Request(_ State, message string, effect Effect) State {
	return State{Kind: Pending, Message: message, Effect: effect}
}

// Notice is an informational dialog.
func Notice(s State, message string) State {
	return Request(s, message, EffectNone)
}

// Confirm hands out the pending effect. ok is false when nothing was pending.
func Confirm(s State) (next State, effect Effect, ok bool) {
	if s.Kind != Pending {
		return s, EffectNone, false
	}
	if s.Effect.closesOnConfirm() {
		return State{Kind: Idle}, s.Effect, true
	}
	return s, s.Effect, true
}

// Cancel discards the pending dialog without running its effect.
func Cancel(State) State {
	return State{Kind: Idle}
}

// Close hides the dialog; used by effects that close themselves.
func Close(State) State {
	return State{Kind: Idle}
}
