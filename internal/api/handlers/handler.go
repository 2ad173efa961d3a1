package handlers

import (
	"github.com/rohits-web03/docdrop/internal/api/services"
	"github.com/rohits-web03/docdrop/internal/auth"
	"github.com/rohits-web03/docdrop/internal/repositories"
)

// Handler holds the per-process dependencies every endpoint needs. All of
// them are injected at startup; handlers keep no package-level state.
type Handler struct {
	users     repositories.UserRepository
	transfers *services.TransferService
	tokens    *auth.TokenService
	notifier  services.Notifier
}

func New(
	users repositories.UserRepository,
	transfers *services.TransferService,
	tokens *auth.TokenService,
	notifier services.Notifier,
) *Handler {
	return &Handler{
		users:     users,
		transfers: transfers,
		tokens:    tokens,
		notifier:  notifier,
	}
}

// TokenResponse is the body of successful signup and login responses.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
