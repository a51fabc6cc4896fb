package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "users-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create a user",
		Tags:          []string{"users"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
		DefaultStatus: http.StatusCreated,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users, newest first",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{id}",
		Summary:     "Partially update a user",
		Description: "Absent fields are left untouched. A present access_windows array replaces the full window set.",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}",
		Summary:     "Delete a user",
		Description: "Embeddings and access windows are removed with the user. Event log rows keep their user reference.",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) uploadPhotosOp() huma.Operation {
	return huma.Operation{
		OperationID:   "users-upload-photos",
		Method:        http.MethodPost,
		Path:          "/api/v1/users/{id}/photos",
		Summary:       "Upload face photos and enroll embeddings",
		Description:   "Each uploaded image is run through the embedding provider; the vector is stored and the photo saved under the user's directory.",
		Tags:          []string{"users", "photos"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
		DefaultStatus: http.StatusCreated,
	}
}

func (h *Handler) listEmbeddingsOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-list-embeddings",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/embeddings",
		Summary:     "List a user's stored embeddings",
		Tags:        []string{"users", "embeddings"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listPhotosOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-list-photos",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/photos",
		Summary:     "List a user's stored photo URLs",
		Tags:        []string{"users", "photos"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
