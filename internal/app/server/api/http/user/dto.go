package user

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type windowRequest struct {
	DayOfWeek int    `json:"day_of_week" minimum:"0" maximum:"6" doc:"0=Monday .. 6=Sunday"`
	StartTime string `json:"start_time" example:"08:00:00" doc:"Window start, HH:MM:SS"`
	EndTime   string `json:"end_time" example:"18:00:00" doc:"Window end, HH:MM:SS"`
}

type userResponse struct {
	ID         int        `json:"id"`
	FullName   string     `json:"full_name"`
	Identifier string     `json:"identifier"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	FullName      string          `json:"full_name" minLength:"1" doc:"Display name"`
	Identifier    string          `json:"identifier" minLength:"1" doc:"Unique login identifier"`
	Password      string          `json:"password" minLength:"1"`
	IsActive      *bool           `json:"is_active,omitempty" doc:"Defaults to active when omitted"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty" doc:"Access expiry, null for permanent"`
	AccessWindows []windowRequest `json:"access_windows,omitempty"`
}

type createOutput struct {
	Body userResponse
}

type listOutput struct {
	Body []userResponse
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"User ID"`
	Body updateRequest
}

// updateRequest uses pointers throughout: absent fields are not applied.
type updateRequest struct {
	FullName      *string          `json:"full_name,omitempty"`
	Password      *string          `json:"password,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	AccessWindows *[]windowRequest `json:"access_windows,omitempty" doc:"Replaces the whole window set when present"`
}

type updateOutput struct {
	Body userResponse
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"User ID"`
}

type deleteOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}

type uploadPhotosInput struct {
	ID      int `path:"id" example:"1" doc:"User ID"`
	RawBody huma.MultipartFormFiles[photoFormData]
}

type photoFormData struct {
	Files []huma.FormFile `form:"files" contentType:"image/jpeg,image/png" required:"true" doc:"One or more face photos"`
}

type embeddingResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Vector    []float64 `json:"vector"`
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
	PhotoURL  string    `json:"photo_url,omitempty"`
}

type uploadPhotosOutput struct {
	Body []embeddingResponse
}

type listEmbeddingsInput struct {
	ID int `path:"id" example:"1" doc:"User ID"`
}

type listEmbeddingsOutput struct {
	Body []embeddingResponse
}

type listPhotosInput struct {
	ID int `path:"id" example:"1" doc:"User ID"`
}

type listPhotosOutput struct {
	Body photosResponse
}

type photosResponse struct {
	Photos []string `json:"photos"`
}
