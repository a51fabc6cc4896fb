package user

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/user"
	"gatekeeper/internal/embedder"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// PhotoStore is the slice of photo storage the user handlers need.
type PhotoStore interface {
	SaveUserPhoto(userID int, filename string, data []byte) (string, error)
	UserPhotoURLs(userID int) ([]string, error)
}

type Handler struct {
	users      user.Servicer
	embeddings embedding.Servicer
	provider   embedder.Provider
	photos     PhotoStore
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(users user.Servicer, embeddings embedding.Servicer, provider embedder.Provider,
	photos PhotoStore, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		users:      users,
		embeddings: embeddings,
		provider:   provider,
		photos:     photos,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)

	huma.Register(api, h.uploadPhotosOp(), h.uploadPhotos)
	huma.Register(api, h.listEmbeddingsOp(), h.listEmbeddings)
	huma.Register(api, h.listPhotosOp(), h.listPhotos)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	// New users are active unless the request says otherwise.
	isActive := true
	if input.Body.IsActive != nil {
		isActive = *input.Body.IsActive
	}

	created, err := h.users.Create(ctx, user.CreateInput{
		FullName:      input.Body.FullName,
		Identifier:    input.Body.Identifier,
		Password:      input.Body.Password,
		IsActive:      isActive,
		ExpiresAt:     input.Body.ExpiresAt,
		AccessWindows: toWindowInputs(input.Body.AccessWindows),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &createOutput{Body: toUserResponse(created)}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return &listOutput{Body: out}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	in := user.UpdateInput{
		FullName:  input.Body.FullName,
		Password:  input.Body.Password,
		IsActive:  input.Body.IsActive,
		ExpiresAt: input.Body.ExpiresAt,
	}
	if input.Body.AccessWindows != nil {
		windows := toWindowInputs(*input.Body.AccessWindows)
		in.AccessWindows = &windows
	}

	updated, err := h.users.Update(ctx, input.ID, in)
	if err != nil {
		return nil, mapError(err)
	}

	return &updateOutput{Body: toUserResponse(updated)}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if err := h.users.Delete(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}
	return &deleteOutput{Body: statusResponse{Status: "Ok"}}, nil
}

// uploadPhotos enrolls one embedding per uploaded image. The photo is saved
// only after the embedding row exists so the filename can carry its id.
func (h *Handler) uploadPhotos(ctx context.Context, input *uploadPhotosInput) (*uploadPhotosOutput, error) {
	if _, err := h.users.GetByID(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}

	form := input.RawBody.Data()
	if len(form.Files) == 0 {
		return nil, huma.Error422UnprocessableEntity("No files uploaded")
	}

	out := make([]embeddingResponse, 0, len(form.Files))
	for _, file := range form.Files {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("Failed to read upload: " + err.Error())
		}
		if len(data) == 0 {
			return nil, huma.Error422UnprocessableEntity("Empty file: " + file.Filename)
		}

		vector, err := h.provider.GenerateEmbedding(ctx, data)
		if err != nil {
			return nil, huma.Error500InternalServerError("Embedding generation failed: " + err.Error())
		}

		emb, err := h.embeddings.Add(ctx, input.ID, vector, h.provider.Name())
		if err != nil {
			return nil, mapError(err)
		}

		url, err := h.photos.SaveUserPhoto(input.ID, strconv.Itoa(emb.ID)+photoExt(file.Filename), data)
		if err != nil {
			return nil, mapError(err)
		}

		h.log.Info("photo enrolled", "user_id", input.ID, "embedding_id", emb.ID, "url", url)
		out = append(out, embeddingResponse{
			ID:        emb.ID,
			UserID:    emb.UserID,
			Vector:    emb.Vector,
			ModelName: emb.ModelName,
			CreatedAt: emb.CreatedAt,
			PhotoURL:  url,
		})
	}

	return &uploadPhotosOutput{Body: out}, nil
}

func (h *Handler) listEmbeddings(ctx context.Context, input *listEmbeddingsInput) (*listEmbeddingsOutput, error) {
	if _, err := h.users.GetByID(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}

	embeddings, err := h.embeddings.ForUser(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]embeddingResponse, 0, len(embeddings))
	for _, emb := range embeddings {
		out = append(out, embeddingResponse{
			ID:        emb.ID,
			UserID:    emb.UserID,
			Vector:    emb.Vector,
			ModelName: emb.ModelName,
			CreatedAt: emb.CreatedAt,
		})
	}
	return &listEmbeddingsOutput{Body: out}, nil
}

func (h *Handler) listPhotos(ctx context.Context, input *listPhotosInput) (*listPhotosOutput, error) {
	if _, err := h.users.GetByID(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}

	urls, err := h.photos.UserPhotoURLs(input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &listPhotosOutput{Body: photosResponse{Photos: urls}}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound("User not found")
	case errors.Is(err, user.ErrConflict):
		return huma.Error409Conflict("Identifier already in use")
	case errors.Is(err, user.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, embedding.ErrDataCorruption):
		return huma.Error500InternalServerError(err.Error())
	default:
		return err
	}
}

func toWindowInputs(in []windowRequest) []user.WindowInput {
	windows := make([]user.WindowInput, 0, len(in))
	for _, w := range in {
		windows = append(windows, user.WindowInput{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	return windows
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Identifier: u.Identifier,
		IsActive:   u.IsActive,
		ExpiresAt:  u.ExpiresAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func photoExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return ext
	default:
		return ".jpg"
	}
}
