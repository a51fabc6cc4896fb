package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User, windows []AccessWindow) (User, error) {
	args := m.Called(ctx, u, windows)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) GetByIdentifier(ctx context.Context, identifier string) (User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u User) (User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) ReplaceWindows(ctx context.Context, userID int, windows []AccessWindow) error {
	args := m.Called(ctx, userID, windows)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	in := CreateInput{
		FullName:   "Jane Doe",
		Identifier: "jane",
		Password:   "secret123",
		IsActive:   true,
	}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Identifier == "jane" &&
			u.PasswordHash != "" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	}), mock.AnythingOfType("[]user.AccessWindow")).Return(User{ID: 7, Identifier: "jane"}, nil)

	created, err := service.Create(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, 7, created.ID)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_Conflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("User"), mock.AnythingOfType("[]user.AccessWindow")).
		Return(User{}, ErrConflict)

	_, err := service.Create(context.Background(), CreateInput{Identifier: "dup", Password: "pw"})
	assert.ErrorIs(t, err, ErrConflict)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_InvalidWindow(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Create(context.Background(), CreateInput{
		Identifier: "jane",
		Password:   "pw",
		AccessWindows: []WindowInput{
			{DayOfWeek: 7, StartTime: "09:00:00", EndTime: "17:00:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Update_PartialFields(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := User{
		ID:           3,
		FullName:     "Old Name",
		Identifier:   "user3",
		PasswordHash: "old-hash",
		IsActive:     true,
	}
	mockRepo.On("GetByID", mock.Anything, 3).Return(existing, nil)

	newName := "New Name"
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u User) bool {
		// Only the provided field changes; everything else stays.
		return u.FullName == newName && u.PasswordHash == "old-hash" && u.IsActive
	})).Return(User{ID: 3, FullName: newName}, nil)

	updated, err := service.Update(context.Background(), 3, UpdateInput{FullName: &newName})
	assert.NoError(t, err)
	assert.Equal(t, newName, updated.FullName)
	mockRepo.AssertNotCalled(t, "ReplaceWindows")
	mockRepo.AssertExpectations(t)
}

func TestService_Update_ReplacesWindows(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := User{ID: 3, Identifier: "user3", PasswordHash: "h"}
	mockRepo.On("GetByID", mock.Anything, 3).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("User")).Return(existing, nil)

	windows := []WindowInput{
		{DayOfWeek: 1, StartTime: "08:00:00", EndTime: "18:00:00"},
		{DayOfWeek: 2, StartTime: "08:00:00", EndTime: "18:00:00"},
	}
	mockRepo.On("ReplaceWindows", mock.Anything, 3, mock.MatchedBy(func(w []AccessWindow) bool {
		return len(w) == 2 && w[0].DayOfWeek == 1 && w[1].DayOfWeek == 2
	})).Return(nil)

	_, err := service.Update(context.Background(), 3, UpdateInput{AccessWindows: &windows})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByID", mock.Anything, 99).Return(User{}, ErrNotFound)

	_, err := service.Update(context.Background(), 99, UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("GetByIdentifier", mock.Anything, "admin").
		Return(User{ID: 1, Identifier: "admin", PasswordHash: string(hash)}, nil)

	u, err := service.Authenticate(context.Background(), "admin", "correct-horse")
	assert.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("GetByIdentifier", mock.Anything, "admin").
		Return(User{ID: 1, PasswordHash: string(hash)}, nil)

	_, err = service.Authenticate(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByIdentifier", mock.Anything, "ghost").Return(User{}, ErrNotFound)

	_, err := service.Authenticate(context.Background(), "ghost", "pw")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_EnsureDefaultAdmin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByIdentifier", mock.Anything, "admin").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Identifier == "admin" && u.IsActive
	}), mock.AnythingOfType("[]user.AccessWindow")).Return(User{ID: 1}, nil)

	err := service.EnsureDefaultAdmin(context.Background(), "admin", "admin")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_EnsureDefaultAdmin_AlreadyExists(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByIdentifier", mock.Anything, "admin").Return(User{ID: 1}, nil)

	err := service.EnsureDefaultAdmin(context.Background(), "admin", "admin")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_EnsureDefaultAdmin_LongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	mockRepo.On("GetByIdentifier", mock.Anything, "admin").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("User"), mock.AnythingOfType("[]user.AccessWindow")).
		Return(User{ID: 1}, nil)

	// Passwords beyond the bcrypt limit are truncated, not rejected.
	err := service.EnsureDefaultAdmin(context.Background(), "admin", string(long))
	assert.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, 5).Return(nil)

	err := service.Delete(context.Background(), 5)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, 5).Return(errors.New("database error"))

	err := service.Delete(context.Background(), 5)
	assert.Error(t, err)
}

func TestService_Update_SetExpiry(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := User{ID: 4, Identifier: "temp", PasswordHash: "h"}
	mockRepo.On("GetByID", mock.Anything, 4).Return(existing, nil)

	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.ExpiresAt != nil && u.ExpiresAt.Equal(expiry)
	})).Return(existing, nil)

	_, err := service.Update(context.Background(), 4, UpdateInput{ExpiresAt: &expiry})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
