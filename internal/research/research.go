package research

import (
	"context"
	"errors"
	"time"
)

// Capability failure kinds. Callers branch with errors.Is; the session layer
// translates them into user-facing messages.
var (
	// ErrBackendUnavailable covers network, auth, and remote failures,
	// including a missing credential.
	ErrBackendUnavailable = errors.New("research backend unavailable")

	// ErrEmptyResult means the backend responded but produced no usable
	// content.
	ErrEmptyResult = errors.New("research backend returned no usable content")
)

// Findings holds the research gathered for one company. A record is consumed
// by plan generation and replaced when a different company is researched.
type Findings struct {
	Company     string    `json:"company"`
	Content     string    `json:"findings"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// Provider is the remote generative backend. Search runs company research,
// Complete answers an arbitrary prompt with optional grounding context. Both
// are idempotent from the caller's perspective: calling them never mutates
// local state.
type Provider interface {
	Search(ctx context.Context, company string) (Findings, error)
	Complete(ctx context.Context, prompt, contextText string) (string, error)
}
