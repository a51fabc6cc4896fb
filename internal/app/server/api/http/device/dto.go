package device

import (
	"time"

	"gatekeeper/internal/domain/sync"

	"github.com/danielgtaylor/huma/v2"
)

type syncInput struct {
	DeviceID          string `header:"X-Device-Id" doc:"Device identifier; when set, the delivered hash is recorded"`
	IncludeEmbeddings bool   `query:"include_embeddings" doc:"Include stored face embeddings in the payload"`
}

type syncOutput struct {
	PayloadHash string `header:"X-Payload-Hash" doc:"SHA-256 of the canonical payload"`
	Body        sync.Payload
}

type eventInput struct {
	Body eventRequest
}

type eventRequest struct {
	UserIdentifier *string  `json:"user_identifier,omitempty" doc:"Resolved to a user id when known"`
	Status         string   `json:"status" minLength:"1" example:"granted"`
	Message        *string  `json:"message,omitempty"`
	DeviceID       *string  `json:"device_id,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty" minimum:"0" maximum:"1"`
}

type eventOutput struct {
	Body eventResponse
}

type eventResponse struct {
	ID         int       `json:"id"`
	UserID     *int      `json:"user_id"`
	Status     string    `json:"status"`
	Message    *string   `json:"message"`
	DeviceID   *string   `json:"device_id"`
	Confidence *float64  `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

type captureInput struct {
	DeviceID string `header:"X-Device-Id" doc:"Device identifier used as the capture directory"`
	RawBody  huma.MultipartFormFiles[captureFormData]
}

type captureFormData struct {
	File       huma.FormFile `form:"file" contentType:"image/jpeg,image/png" required:"true" doc:"Captured frame"`
	PersonName string        `form:"person_name" required:"true" doc:"Recognized or reported person name"`
	CapturedAt string        `form:"captured_at" doc:"RFC 3339 capture time; defaults to now"`
}

type captureOutput struct {
	Body captureResponse
}

type captureResponse struct {
	Device     string    `json:"device"`
	PersonName string    `json:"person_name"`
	CapturedAt time.Time `json:"captured_at"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	SizeBytes  int       `json:"size_bytes"`
}
