package user

import (
	"context"
	"testing"
	"time"

	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, in user.CreateInput) (user.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int, in user.UpdateInput) (user.User, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) GetByID(ctx context.Context, id int) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) GetByIdentifier(ctx context.Context, identifier string) (user.User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, identifier, password string) (user.User, error) {
	args := m.Called(ctx, identifier, password)
	return args.Get(0).(user.User), args.Error(1)
}

type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Add(ctx context.Context, userID int, vector []float64, modelName string) (embedding.Embedding, error) {
	args := m.Called(ctx, userID, vector, modelName)
	return args.Get(0).(embedding.Embedding), args.Error(1)
}

func (m *MockEmbeddingService) ForUser(ctx context.Context, userID int) ([]embedding.Embedding, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]embedding.Embedding), args.Error(1)
}

type fakePhotoStore struct {
	saved map[string][]byte
	urls  []string
}

func (f *fakePhotoStore) SaveUserPhoto(userID int, filename string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[filename] = data
	return "/uploads/user_1/" + filename, nil
}

func (f *fakePhotoStore) UserPhotoURLs(userID int) ([]string, error) {
	return f.urls, nil
}

func newTestHandler(users *MockUserService, embeddings *MockEmbeddingService, photos *fakePhotoStore) *Handler {
	return NewHandler(users, embeddings, nil, photos, slog.Default(), nil)
}

func TestHandler_create(t *testing.T) {
	t.Run("created user is echoed back without the hash", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Create", mock.Anything, mock.MatchedBy(func(in user.CreateInput) bool {
			return in.Identifier == "jdoe" && len(in.AccessWindows) == 1
		})).Return(user.User{ID: 7, FullName: "Jane Doe", Identifier: "jdoe", IsActive: true}, nil)

		h := newTestHandler(users, nil, nil)

		active := true
		input := &createInput{}
		input.Body.FullName = "Jane Doe"
		input.Body.Identifier = "jdoe"
		input.Body.Password = "secret"
		input.Body.IsActive = &active
		input.Body.AccessWindows = []windowRequest{
			{DayOfWeek: 1, StartTime: "08:00:00", EndTime: "18:00:00"},
		}

		output, err := h.create(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, 7, output.Body.ID)
		assert.Equal(t, "jdoe", output.Body.Identifier)
	})

	t.Run("omitted is_active defaults to active", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Create", mock.Anything, mock.MatchedBy(func(in user.CreateInput) bool {
			return in.IsActive
		})).Return(user.User{ID: 8, Identifier: "jdoe", IsActive: true}, nil)

		h := newTestHandler(users, nil, nil)

		input := &createInput{}
		input.Body.FullName = "Jane Doe"
		input.Body.Identifier = "jdoe"
		input.Body.Password = "secret"

		output, err := h.create(context.Background(), input)

		require.NoError(t, err)
		assert.True(t, output.Body.IsActive)
		users.AssertExpectations(t)
	})

	t.Run("explicit is_active false is respected", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Create", mock.Anything, mock.MatchedBy(func(in user.CreateInput) bool {
			return !in.IsActive
		})).Return(user.User{ID: 9, Identifier: "jdoe"}, nil)

		h := newTestHandler(users, nil, nil)

		inactive := false
		input := &createInput{}
		input.Body.FullName = "Jane Doe"
		input.Body.Identifier = "jdoe"
		input.Body.Password = "secret"
		input.Body.IsActive = &inactive

		_, err := h.create(context.Background(), input)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("duplicate identifier maps to 409", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Create", mock.Anything, mock.Anything).
			Return(user.User{}, user.ErrConflict)

		h := newTestHandler(users, nil, nil)

		input := &createInput{}
		input.Body.Identifier = "jdoe"
		input.Body.Password = "secret"

		_, err := h.create(context.Background(), input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Identifier already in use")
	})
}

func TestHandler_update(t *testing.T) {
	t.Run("unknown id maps to 404", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Update", mock.Anything, 42, mock.Anything).
			Return(user.User{}, user.ErrNotFound)

		h := newTestHandler(users, nil, nil)

		_, err := h.update(context.Background(), &updateInput{ID: 42})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "User not found")
	})

	t.Run("windows pointer is forwarded for full replacement", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Update", mock.Anything, 7, mock.MatchedBy(func(in user.UpdateInput) bool {
			return in.AccessWindows != nil && len(*in.AccessWindows) == 2 && in.FullName == nil
		})).Return(user.User{ID: 7}, nil)

		h := newTestHandler(users, nil, nil)

		windows := []windowRequest{
			{DayOfWeek: 0, StartTime: "08:00:00", EndTime: "12:00:00"},
			{DayOfWeek: 4, StartTime: "13:00:00", EndTime: "17:00:00"},
		}
		input := &updateInput{ID: 7}
		input.Body.AccessWindows = &windows

		_, err := h.update(context.Background(), input)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestHandler_delete(t *testing.T) {
	users := new(MockUserService)
	users.On("Delete", mock.Anything, 1).Return(nil)
	users.On("Delete", mock.Anything, 99).Return(user.ErrNotFound)

	h := newTestHandler(users, nil, nil)

	output, err := h.delete(context.Background(), &deleteInput{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)

	_, err = h.delete(context.Background(), &deleteInput{ID: 99})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User not found")
}

func TestHandler_listEmbeddings(t *testing.T) {
	now := time.Now().UTC()

	users := new(MockUserService)
	users.On("GetByID", mock.Anything, 3).Return(user.User{ID: 3}, nil)

	embeddings := new(MockEmbeddingService)
	embeddings.On("ForUser", mock.Anything, 3).Return([]embedding.Embedding{
		{ID: 11, UserID: 3, Vector: []float64{0.1, 0.2}, ModelName: "facenet", CreatedAt: now},
	}, nil)

	h := newTestHandler(users, embeddings, nil)

	output, err := h.listEmbeddings(context.Background(), &listEmbeddingsInput{ID: 3})

	require.NoError(t, err)
	require.Len(t, output.Body, 1)
	assert.Equal(t, []float64{0.1, 0.2}, output.Body[0].Vector)
	assert.Equal(t, "facenet", output.Body[0].ModelName)
}

func TestHandler_listPhotos(t *testing.T) {
	users := new(MockUserService)
	users.On("GetByID", mock.Anything, 3).Return(user.User{ID: 3}, nil)
	users.On("GetByID", mock.Anything, 8).Return(user.User{}, user.ErrNotFound)

	photos := &fakePhotoStore{urls: []string{"/uploads/user_3/11.jpg"}}
	h := newTestHandler(users, nil, photos)

	output, err := h.listPhotos(context.Background(), &listPhotosInput{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/user_3/11.jpg"}, output.Body.Photos)

	_, err = h.listPhotos(context.Background(), &listPhotosInput{ID: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User not found")
}

func TestPhotoExt(t *testing.T) {
	assert.Equal(t, ".png", photoExt("face.PNG"))
	assert.Equal(t, ".jpeg", photoExt("face.jpeg"))
	assert.Equal(t, ".jpg", photoExt("face.webp"))
	assert.Equal(t, ".jpg", photoExt("face"))
}
