package device

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/event"
	"gatekeeper/internal/domain/sync"
	"gatekeeper/internal/domain/user"
	"gatekeeper/internal/infrastructure/storage/photostore"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// CaptureStore is the slice of photo storage the device handlers need.
type CaptureStore interface {
	SaveCapture(in photostore.CaptureInput) (photostore.SavedCapture, error)
}

type Handler struct {
	syncs      sync.Servicer
	events     event.Servicer
	users      user.Servicer
	captures   CaptureStore
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(syncs sync.Servicer, events event.Servicer, users user.Servicer,
	captures CaptureStore, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		syncs:      syncs,
		events:     events,
		users:      users,
		captures:   captures,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncOp(), h.sync)
	huma.Register(api, h.logEventOp(), h.logEvent)
	huma.Register(api, h.uploadCaptureOp(), h.uploadCapture)
}

func (h *Handler) sync(ctx context.Context, input *syncInput) (*syncOutput, error) {
	payload, hash, err := h.syncs.Build(ctx, sync.BuildOptions{
		DeviceID:          input.DeviceID,
		IncludeEmbeddings: input.IncludeEmbeddings,
	})
	if err != nil {
		if errors.Is(err, sync.ErrStorage) || errors.Is(err, embedding.ErrDataCorruption) {
			return nil, huma.Error500InternalServerError(err.Error())
		}
		return nil, err
	}

	return &syncOutput{
		PayloadHash: hash,
		Body:        *payload,
	}, nil
}

// logEvent accepts unauthenticated device reports. The user identifier is
// resolved best effort; an unknown identifier still records the event.
func (h *Handler) logEvent(ctx context.Context, input *eventInput) (*eventOutput, error) {
	var userID *int
	if input.Body.UserIdentifier != nil && *input.Body.UserIdentifier != "" {
		u, err := h.users.GetByIdentifier(ctx, *input.Body.UserIdentifier)
		switch {
		case err == nil:
			userID = &u.ID
		case errors.Is(err, user.ErrNotFound):
			h.log.Debug("event for unknown identifier", "identifier", *input.Body.UserIdentifier)
		default:
			return nil, err
		}
	}

	e, err := h.events.Log(ctx, event.LogInput{
		UserID:     userID,
		Status:     input.Body.Status,
		Message:    input.Body.Message,
		DeviceID:   input.Body.DeviceID,
		Confidence: input.Body.Confidence,
	})
	if err != nil {
		return nil, err
	}

	return &eventOutput{
		Body: eventResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Status:     e.Status,
			Message:    e.Message,
			DeviceID:   e.DeviceID,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt,
		},
	}, nil
}

func (h *Handler) uploadCapture(ctx context.Context, input *captureInput) (*captureOutput, error) {
	form := input.RawBody.Data()

	data, err := io.ReadAll(form.File)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Failed to read upload: " + err.Error())
	}
	if len(data) == 0 {
		return nil, huma.Error422UnprocessableEntity("Empty capture upload")
	}

	capturedAt := time.Now().UTC()
	if form.CapturedAt != "" {
		ts, err := time.Parse(time.RFC3339, form.CapturedAt)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid captured_at: " + err.Error())
		}
		capturedAt = ts.UTC()
	}

	saved, err := h.captures.SaveCapture(photostore.CaptureInput{
		Device:     input.DeviceID,
		PersonName: form.PersonName,
		CapturedAt: capturedAt,
		Ext:        filepath.Ext(form.File.Filename),
		Data:       data,
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("capture stored", "device", saved.Device, "url", saved.URL)
	return &captureOutput{
		Body: captureResponse{
			Device:     saved.Device,
			PersonName: saved.PersonName,
			CapturedAt: saved.CapturedAt,
			Filename:   saved.Filename,
			URL:        saved.URL,
			SizeBytes:  saved.SizeBytes,
		},
	}, nil
}
