package event

import "time"

// Event is an append-only access-attempt record. UserID is nullable so that
// unmatched attempts are still logged, and it survives user deletion.
type Event struct {
	ID         int
	UserID     *int
	Status     string
	Message    *string
	DeviceID   *string
	Confidence *float64
	CreatedAt  time.Time
}
