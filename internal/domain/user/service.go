package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// bcrypt rejects passwords longer than 72 bytes.
const maxPasswordBytes = 72

type WindowInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type CreateInput struct {
	FullName      string
	Identifier    string
	Password      string
	IsActive      bool
	ExpiresAt     *time.Time
	AccessWindows []WindowInput
}

// UpdateInput carries partial-update semantics: nil fields are left
// untouched. A non-nil AccessWindows fully replaces the window set.
type UpdateInput struct {
	FullName      *string
	Password      *string
	IsActive      *bool
	ExpiresAt     *time.Time
	AccessWindows *[]WindowInput
}

type Servicer interface {
	Create(ctx context.Context, in CreateInput) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int, in UpdateInput) (User, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (User, error)
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	Authenticate(ctx context.Context, identifier, password string) (User, error)
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

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	if in.Identifier == "" {
		return User{}, fmt.Errorf("%w: identifier is required", ErrInvalidInput)
	}
	if err := validateWindows(in.AccessWindows); err != nil {
		return User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		FullName:     in.FullName,
		Identifier:   in.Identifier,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		ExpiresAt:    in.ExpiresAt,
	}

	created, err := s.repo.Create(ctx, u, toWindows(0, in.AccessWindows))
	if err != nil {
		return User{}, err
	}

	s.log.Info("user created", "user_id", created.ID, "identifier", created.Identifier)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (User, error) {
	return s.repo.GetByIdentifier(ctx, identifier)
}

func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.ExpiresAt != nil {
		u.ExpiresAt = in.ExpiresAt
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return User{}, err
	}

	if in.AccessWindows != nil {
		if err := validateWindows(*in.AccessWindows); err != nil {
			return User{}, err
		}
		if err := s.repo.ReplaceWindows(ctx, id, toWindows(id, *in.AccessWindows)); err != nil {
			return User{}, fmt.Errorf("replace access windows: %w", err)
		}
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) Authenticate(ctx context.Context, identifier, password string) (User, error) {
	u, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}

// EnsureDefaultAdmin creates the bootstrap administrator when no user with
// the given identifier exists yet. Called once at startup.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, identifier, password string) error {
	if _, err := s.repo.GetByIdentifier(ctx, identifier); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err := s.Create(ctx, CreateInput{
		FullName:   "Administrator",
		Identifier: identifier,
		Password:   password,
		IsActive:   true,
	})
	if err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	s.log.Info("default admin created", "identifier", identifier)
	return nil
}

func hashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateWindows(windows []WindowInput) error {
	for _, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrInvalidInput)
		}
	}
	return nil
}

func toWindows(userID int, in []WindowInput) []AccessWindow {
	windows := make([]AccessWindow, 0, len(in))
	for _, w := range in {
		windows = append(windows, AccessWindow{
			UserID:    userID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	return windows
}
