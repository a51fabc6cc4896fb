package event

import (
	"context"

	"gatekeeper/internal/domain/event"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	events     event.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(events event.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		events:     events,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	events, err := h.events.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Status:     e.Status,
			Message:    e.Message,
			DeviceID:   e.DeviceID,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &listOutput{Body: out}, nil
}
