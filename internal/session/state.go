package session

import (
	"github.com/google/uuid"

	"github.com/dikshacr123/research-agent/internal/plan"
	"github.com/dikshacr123/research-agent/internal/research"
)

// Phase is the conversational phase of a session.
type Phase int

const (
	// PhaseIdle accepts any intent; research may or may not be available.
	PhaseIdle Phase = iota
	// PhaseAwaitingConfirmation means a pending intent waits for a yes.
	PhaseAwaitingConfirmation
	// PhasePlanReady means a plan exists and can be edited or exported.
	PhasePlanReady
	// PhaseEditing means the next utterance is the new text for one section.
	PhaseEditing
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingConfirmation:
		return "awaiting_confirmation"
	case PhasePlanReady:
		return "plan_ready"
	case PhaseEditing:
		return "editing"
	}
	return "idle"
}

// State is the session's in-memory state, owned exclusively by one
// Controller. It is never shared across sessions.
type State struct {
	ID       string
	Phase    Phase
	Company  string
	Research *research.Findings
	Plan     *plan.AccountPlan
	Editing  string  // section being edited while PhaseEditing
	Pending  *Intent // intent awaiting a bare confirmation
}

// NewState returns a fresh idle session state.
func NewState() State {
	return State{
		ID:    uuid.NewString(),
		Phase: PhaseIdle,
	}
}
