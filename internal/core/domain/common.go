package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Rate records are insert-only, so only the creation time is tracked.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
}

// DateLayout is the ISO calendar date layout used by the provider and the store.
const DateLayout = "2006-01-02"

// TruncateToDate drops the time-of-day part, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
