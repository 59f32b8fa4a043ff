package http_handlers

import (
	"net/http"

	"github.com/securitysvcs/auth-service/internal/application/auth"
	"github.com/securitysvcs/auth-service/internal/logger"
	"github.com/securitysvcs/auth-service/internal/transport/http/dto"
	"github.com/securitysvcs/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	req.Normalize()

	account, err := h.svc.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Msg("account_registered")

	response.Created(w, dto.NewAccountView(account))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	account, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", account.Username).
		Msg("login_succeeded")

	response.OK(w, dto.NewAccountView(account))
}
