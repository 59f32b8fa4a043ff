package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/securitysvcs/auth-service/internal/application/auth"
	"github.com/securitysvcs/auth-service/internal/domain"
	"github.com/securitysvcs/auth-service/internal/logger"
	"github.com/securitysvcs/auth-service/internal/transport/http/dto"
	"github.com/securitysvcs/auth-service/internal/transport/http/response"
)

// AccountsHandler serves the administrative account surface: listing,
// provisioning with an explicit role, unlock, removal, and the audit trail.
type AccountsHandler struct {
	svc *auth.Service
}

func NewAccountsHandler(svc *auth.Service) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewAccountViews(accounts))
}

func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	account, err := h.svc.GetAccount(r.Context(), username)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewAccountView(account))
}

func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	account, err := h.svc.RegisterWithRole(r.Context(), req.Username, req.Password, req.ConfirmPassword, domain.Role(req.Role))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Msg("account_provisioned")

	response.Created(w, dto.NewAccountView(account))
}

func (h *AccountsHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.svc.UnlockAccount(r.Context(), username); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", username).
		Msg("account_unlocked")

	response.NoContent(w)
}

func (h *AccountsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.svc.RemoveAccount(r.Context(), username); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", username).
		Msg("account_removed")

	response.NoContent(w)
}

func (h *AccountsHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewEventViews(events))
}
