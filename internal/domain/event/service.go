package event

import (
	"context"

	"golang.org/x/exp/slog"
)

// DefaultListLimit bounds event listings so responses stay small.
const DefaultListLimit = 100

type LogInput struct {
	UserID     *int
	Status     string
	Message    *string
	DeviceID   *string
	Confidence *float64
}

type Servicer interface {
	Log(ctx context.Context, in LogInput) (Event, error)
	List(ctx context.Context) ([]Event, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Log appends an event and returns the stored row. Deliberately not
// idempotent: every call records a new event, duplicates included.
func (s *Service) Log(ctx context.Context, in LogInput) (Event, error) {
	e, err := s.repo.Insert(ctx, Event{
		UserID:     in.UserID,
		Status:     in.Status,
		Message:    in.Message,
		DeviceID:   in.DeviceID,
		Confidence: in.Confidence,
	})
	if err != nil {
		return Event{}, err
	}

	s.log.Debug("event logged", "event_id", e.ID, "status", e.Status)
	return e, nil
}

// List returns events most-recent-first, capped at DefaultListLimit.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx, DefaultListLimit)
}
