package sync

import "time"

// Payload is the snapshot an edge device needs to operate autonomously until
// the next sync. Field order is part of the canonical serialization; do not
// reorder without versioning the hash contract.
type Payload struct {
	Photos        []PhotoMeta    `json:"photos"`
	Users         []UserOut      `json:"users"`
	AccessWindows []WindowOut    `json:"access_windows"`
	Embeddings    []EmbeddingOut `json:"embeddings,omitempty"`
	Config        DeviceConfig   `json:"config"`
}

// UserOut is the public user shape: everything but the credential hash.
type UserOut struct {
	ID         int        `json:"id"`
	FullName   string     `json:"full_name"`
	Identifier string     `json:"identifier"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type WindowOut struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PhotoMeta describes one photo file. Enrollment photos carry a user id;
// device captures carry a person name instead (pre-enrollment evidence).
type PhotoMeta struct {
	UserID     *int       `json:"user_id,omitempty"`
	PersonName string     `json:"person_name,omitempty"`
	Filename   string     `json:"filename"`
	URL        string     `json:"url"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

type EmbeddingOut struct {
	ID        int       `json:"id"`
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
	Vector    []float64 `json:"vector"`
}

// DeviceConfig is the flat operational subset of settings shipped to devices.
type DeviceConfig struct {
	Threshold       float64 `json:"threshold"`
	GPIOPin         int     `json:"gpio_pin"`
	GPIOPulseMS     int     `json:"gpio_pulse_ms"`
	SyncIntervalSec int     `json:"sync_interval_sec"`
}

type BuildOptions struct {
	DeviceID          string
	IncludeEmbeddings bool
}
