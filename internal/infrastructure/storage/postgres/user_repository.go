package postgres

import (
	"context"
	"errors"
	"fmt"

	"gatekeeper/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const uniqueViolation = "23505"

const userColumns = `id, full_name, identifier, password_hash, is_active, expires_at, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log,
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User, windows []user.AccessWindow) (user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO users (full_name, identifier, password_hash, is_active, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.FullName, u.Identifier, u.PasswordHash, u.IsActive, u.ExpiresAt)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.User{}, user.ErrConflict
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	for _, w := range windows {
		_, err := tx.Exec(ctx,
			`INSERT INTO access_windows (user_id, day_of_week, start_time, end_time)
			 VALUES ($1, $2, $3, $4)`,
			created.ID, w.DayOfWeek, w.StartTime, w.EndTime)
		if err != nil {
			return user.User{}, fmt.Errorf("insert access window: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (user.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (user.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE identifier = $1`, identifier)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("get user by identifier: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
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

func (r *UserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET full_name = $1, password_hash = $2, is_active = $3, expires_at = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING `+userColumns,
		u.FullName, u.PasswordHash, u.IsActive, u.ExpiresAt, u.ID)

	updated, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// ReplaceWindows swaps the user's whole window set in one transaction.
func (r *UserRepository) ReplaceWindows(ctx context.Context, userID int, windows []user.AccessWindow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM access_windows WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete access windows: %w", err)
	}

	for _, w := range windows {
		_, err := tx.Exec(ctx,
			`INSERT INTO access_windows (user_id, day_of_week, start_time, end_time)
			 VALUES ($1, $2, $3, $4)`,
			userID, w.DayOfWeek, w.StartTime, w.EndTime)
		if err != nil {
			return fmt.Errorf("insert access window: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the user; embeddings and access windows go with it via
// ON DELETE CASCADE, while event_logs rows keep their user_id.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.FullName, &u.Identifier, &u.PasswordHash,
		&u.IsActive, &u.ExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
