package postgres

import (
	"context"
	"fmt"
	"time"

	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

// SyncRepository is the read view the payload builder aggregates over, plus
// the device_sync bookkeeping upsert.
type SyncRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSyncRepository(pool *pgxpool.Pool, log *slog.Logger) *SyncRepository {
	return &SyncRepository{
		pool: pool,
		log:  log,
	}
}

func (r *SyncRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *SyncRepository) ListAccessWindows(ctx context.Context) ([]user.AccessWindow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, day_of_week,
		        to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS')
		 FROM access_windows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list access windows: %w", err)
	}
	defer rows.Close()

	windows := make([]user.AccessWindow, 0)
	for rows.Next() {
		var w user.AccessWindow
		if err := rows.Scan(&w.ID, &w.UserID, &w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("scan access window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *SyncRepository) ListEmbeddings(ctx context.Context) ([]embedding.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, vector, model_name, created_at FROM embeddings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list embeddings: %w", err)
	}
	defer rows.Close()

	return collectEmbeddings(rows)
}

// UpsertDeviceSync records the hash last delivered to a device: insert on
// first sync, update in place afterwards.
func (r *SyncRepository) UpsertDeviceSync(ctx context.Context, deviceID, payloadHash string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO device_sync (device_id, last_sync_at, last_payload_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (device_id) DO UPDATE SET
		     last_sync_at = EXCLUDED.last_sync_at,
		     last_payload_hash = EXCLUDED.last_payload_hash`,
		deviceID, at, payloadHash)
	if err != nil {
		return fmt.Errorf("upsert device sync: %w", err)
	}
	return nil
}
