package postgres

import (
	"context"
	"fmt"

	"gatekeeper/internal/domain/event"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type EventRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewEventRepository(pool *pgxpool.Pool, log *slog.Logger) *EventRepository {
	return &EventRepository{
		pool: pool,
		log:  log,
	}
}

// Insert appends one event row. Rows are never updated or deleted.
func (r *EventRepository) Insert(ctx context.Context, e event.Event) (event.Event, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO event_logs (user_id, status, message, device_id, confidence)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, status, message, device_id, confidence, created_at`,
		e.UserID, e.Status, e.Message, e.DeviceID, e.Confidence)

	var created event.Event
	err := row.Scan(&created.ID, &created.UserID, &created.Status,
		&created.Message, &created.DeviceID, &created.Confidence, &created.CreatedAt)
	if err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (r *EventRepository) List(ctx context.Context, limit int) ([]event.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, status, message, device_id, confidence, created_at
		 FROM event_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]event.Event, 0, limit)
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Status, &e.Message,
			&e.DeviceID, &e.Confidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
