package postgres

import (
	"context"
	"fmt"

	"gatekeeper/internal/domain/embedding"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type EmbeddingRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewEmbeddingRepository(pool *pgxpool.Pool, log *slog.Logger) *EmbeddingRepository {
	return &EmbeddingRepository{
		pool: pool,
		log:  log,
	}
}

func (r *EmbeddingRepository) Add(ctx context.Context, rec embedding.Record) (embedding.Record, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO embeddings (user_id, vector, model_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, vector, model_name, created_at`,
		rec.UserID, rec.VectorText, rec.ModelName)

	created, err := scanEmbedding(row)
	if err != nil {
		return embedding.Record{}, fmt.Errorf("insert embedding: %w", err)
	}
	return created, nil
}

func (r *EmbeddingRepository) ForUser(ctx context.Context, userID int) ([]embedding.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, vector, model_name, created_at
		 FROM embeddings WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list embeddings for user: %w", err)
	}
	defer rows.Close()

	return collectEmbeddings(rows)
}

func collectEmbeddings(rows pgx.Rows) ([]embedding.Record, error) {
	records := make([]embedding.Record, 0)
	for rows.Next() {
		rec, err := scanEmbedding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanEmbedding(row pgx.Row) (embedding.Record, error) {
	var rec embedding.Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.VectorText, &rec.ModelName, &rec.CreatedAt)
	return rec, err
}
