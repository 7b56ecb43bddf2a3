package notify

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/comexhub/comex-go/internal/approval"
)

// Event describes a decision taken on a form. The engine only emits
// these; delivery is whatever the configured Notifier does with them.
type Event struct {
	ID         string            `json:"event_id"`
	FormType   approval.FormType `json:"form_type"`
	FormID     uint              `json:"form_id"`
	Action     string            `json:"action"` // approved / rejected / submitted / revised
	Role       approval.Role     `json:"role,omitempty"`
	NextRole   approval.Role     `json:"next_role,omitempty"`
	IsComplete bool              `json:"is_complete"`
	Message    string            `json:"message"`
	At         time.Time         `json:"at"`
}

func NewEvent(formType approval.FormType, formID uint, action string) Event {
	return Event{
		ID:       uuid.NewString(),
		FormType: formType,
		FormID:   formID,
		Action:   action,
		At:       time.Now(),
	}
}

// Notifier delivers decision events to interested parties. Failures are
// the notifier's problem; callers fire and forget.
type Notifier interface {
	Notify(ev Event)
}

// ConsoleNotifier logs events. Used as a fallback and in tests.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(ev Event) {
	log.Printf("[notify] %s %s/%d by %s (next: %s, complete: %v)",
		ev.Action, ev.FormType, ev.FormID, ev.Role, ev.NextRole, ev.IsComplete)
}
