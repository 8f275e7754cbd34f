package audit

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry maps to the audit_log table. Entries are append-only: nothing in
// the application ever updates or deletes one.
type LogEntry struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	AccountID  *uuid.UUID `db:"account_id" json:"account_id,omitempty"`
	Username   string     `db:"username" json:"username"`
	Action     string     `db:"action" json:"action"`
	RecordedAt time.Time  `db:"recorded_at" json:"recorded_at"`
}
