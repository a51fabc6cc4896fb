package auth

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/session"
	"gatekeeper/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	users      user.Servicer
	sessions   session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(users user.Servicer, sessions session.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.users.Authenticate(ctx, input.Body.Identifier, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	pair, err := h.sessions.IssuePair(u.Identifier)
	if err != nil {
		return nil, err
	}

	h.log.Info("login succeeded", "identifier", u.Identifier)
	return &loginOutput{
		Body: loginResponse{
			AccessToken:      pair.AccessToken,
			RefreshToken:     pair.RefreshToken,
			TokenType:        "bearer",
			ExpiresIn:        pair.ExpiresIn,
			RefreshExpiresIn: pair.RefreshExpiresIn,
		},
	}, nil
}
