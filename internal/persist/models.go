package persist

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dikshacr123/research-agent/internal/plan"
)

var (
	// ErrNotFound means no document exists under the requested key.
	ErrNotFound = errors.New("document not found")

	// ErrPersistence covers local read/write failures. The caller's
	// in-memory state is never touched by a failed store call.
	ErrPersistence = errors.New("persistence failure")
)

// Entry is one line of the conversation transcript. Entries are append-only
// and never reordered; arrival order is the only ordering guarantee.
type Entry struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type,omitempty"` // "research" | "plan" | "chat" | ...
}

// Snapshot is the export envelope written for a plan. Each snapshot gets its
// own ID so repeated exports of the same plan stay distinguishable.
type Snapshot struct {
	ID        string           `json:"id"`
	Data      plan.AccountPlan `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
	Type      string           `json:"type"`
}

// SnapshotType tags exported account plans.
const SnapshotType = "account_plan_output"

// NewSnapshot wraps a plan for export. Pure projection: the data payload is a
// copy, so exporting twice without edits yields identical data.
func NewSnapshot(p plan.AccountPlan) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Data:      p.Clone(),
		Timestamp: time.Now(),
		Type:      SnapshotType,
	}
}
