package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Add(ctx context.Context, userID int, vector []float64, modelName string) (Embedding, error)
	ForUser(ctx context.Context, userID int) ([]Embedding, error)
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

func (s *Service) Add(ctx context.Context, userID int, vector []float64, modelName string) (Embedding, error) {
	text, err := EncodeVector(vector)
	if err != nil {
		return Embedding{}, fmt.Errorf("encode vector: %w", err)
	}

	rec, err := s.repo.Add(ctx, Record{
		UserID:     userID,
		VectorText: text,
		ModelName:  modelName,
	})
	if err != nil {
		return Embedding{}, err
	}

	return Embedding{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Vector:    vector,
		ModelName: rec.ModelName,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (s *Service) ForUser(ctx context.Context, userID int) ([]Embedding, error) {
	records, err := s.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	embeddings := make([]Embedding, 0, len(records))
	for _, rec := range records {
		vector, err := DecodeVector(rec)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, Embedding{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Vector:    vector,
			ModelName: rec.ModelName,
			CreatedAt: rec.CreatedAt,
		})
	}

	return embeddings, nil
}

func EncodeVector(vector []float64) (string, error) {
	b, err := json.Marshal(vector)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeVector parses a stored vector; failure identifies the offending row.
func DecodeVector(rec Record) ([]float64, error) {
	var vector []float64
	if err := json.Unmarshal([]byte(rec.VectorText), &vector); err != nil {
		return nil, fmt.Errorf("embedding %d: %w", rec.ID, ErrDataCorruption)
	}
	return vector, nil
}
