package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gatekeeper/internal/domain/embedding"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Build(ctx context.Context, opts BuildOptions) (*Payload, string, error)
}

// Service assembles sync payloads. Database and filesystem reads are not
// transactionally isolated from concurrent writers; the content hash lets
// devices treat each payload as a point-in-time snapshot.
type Service struct {
	repo   Repository
	photos PhotoSource
	config DeviceConfig
	log    *slog.Logger
}

func NewService(repo Repository, photos PhotoSource, config DeviceConfig, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		config: config,
		log:    log,
	}
}

// Build produces the full snapshot and its SHA-256 content hash. Two builds
// over identical logical state yield byte-identical hashes: every slice is
// sorted and the struct field order fixes the canonical JSON form. When
// opts.DeviceID is set, the delivered hash is recorded via a DeviceSync
// upsert before the payload is returned.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*Payload, string, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: list users: %v", ErrStorage, err)
	}

	windows, err := s.repo.ListAccessWindows(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: list access windows: %v", ErrStorage, err)
	}

	photos, err := s.collectPhotos()
	if err != nil {
		return nil, "", err
	}

	payload := &Payload{
		Photos:        photos,
		Users:         make([]UserOut, 0, len(users)),
		AccessWindows: make([]WindowOut, 0, len(windows)),
		Config:        s.config,
	}

	for _, u := range users {
		payload.Users = append(payload.Users, UserOut{
			ID:         u.ID,
			FullName:   u.FullName,
			Identifier: u.Identifier,
			IsActive:   u.IsActive,
			ExpiresAt:  u.ExpiresAt,
			CreatedAt:  u.CreatedAt,
			UpdatedAt:  u.UpdatedAt,
		})
	}
	sort.Slice(payload.Users, func(i, j int) bool { return payload.Users[i].ID < payload.Users[j].ID })

	for _, w := range windows {
		payload.AccessWindows = append(payload.AccessWindows, WindowOut{
			ID:        w.ID,
			UserID:    w.UserID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	sort.Slice(payload.AccessWindows, func(i, j int) bool {
		return payload.AccessWindows[i].ID < payload.AccessWindows[j].ID
	})

	if opts.IncludeEmbeddings {
		embeddings, err := s.collectEmbeddings(ctx)
		if err != nil {
			return nil, "", err
		}
		payload.Embeddings = embeddings
	}

	hash, err := hashPayload(payload)
	if err != nil {
		return nil, "", fmt.Errorf("hash payload: %w", err)
	}

	if opts.DeviceID != "" {
		if err := s.repo.UpsertDeviceSync(ctx, opts.DeviceID, hash, time.Now().UTC()); err != nil {
			return nil, "", fmt.Errorf("%w: record device sync: %v", ErrStorage, err)
		}
		s.log.Info("device sync recorded", "device_id", opts.DeviceID, "hash", hash)
	}

	return payload, hash, nil
}

func (s *Service) collectPhotos() ([]PhotoMeta, error) {
	userPhotos, err := s.photos.UserPhotos()
	if err != nil {
		return nil, fmt.Errorf("%w: walk user photos: %v", ErrStorage, err)
	}
	captures, err := s.photos.Captures()
	if err != nil {
		return nil, fmt.Errorf("%w: walk captures: %v", ErrStorage, err)
	}

	photos := make([]PhotoMeta, 0, len(userPhotos)+len(captures))
	for _, p := range userPhotos {
		p := p
		photos = append(photos, PhotoMeta{
			UserID:     &p.UserID,
			Filename:   p.Filename,
			URL:        p.URL,
			CapturedAt: &p.CapturedAt,
		})
	}
	for _, c := range captures {
		c := c
		photos = append(photos, PhotoMeta{
			PersonName: c.PersonName,
			Filename:   c.Filename,
			URL:        c.URL,
			CapturedAt: &c.CapturedAt,
		})
	}

	// Directory walk order is filesystem-dependent; sort for determinism.
	sort.Slice(photos, func(i, j int) bool { return photos[i].URL < photos[j].URL })
	return photos, nil
}

func (s *Service) collectEmbeddings(ctx context.Context) ([]EmbeddingOut, error) {
	records, err := s.repo.ListEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list embeddings: %v", ErrStorage, err)
	}

	out := make([]EmbeddingOut, 0, len(records))
	for _, rec := range records {
		vector, err := embedding.DecodeVector(rec)
		if err != nil {
			// Corruption, not a transient condition: fail the build.
			return nil, err
		}
		out = append(out, EmbeddingOut{
			ID:        rec.ID,
			ModelName: rec.ModelName,
			CreatedAt: rec.CreatedAt,
			Vector:    vector,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func hashPayload(p *Payload) (string, error) {
	canonical, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
