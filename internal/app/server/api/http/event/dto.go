package event

import "time"

type eventResponse struct {
	ID         int       `json:"id"`
	UserID     *int      `json:"user_id"`
	Status     string    `json:"status" example:"granted"`
	Message    *string   `json:"message"`
	DeviceID   *string   `json:"device_id"`
	Confidence *float64  `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

type listOutput struct {
	Body []eventResponse
}
