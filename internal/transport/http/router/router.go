package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AccountsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Auth     AuthHandler
	Accounts AccountsHandler

	RequestIDMW func(http.Handler) http.Handler
	LoginRateMW func(http.Handler) http.Handler
	AdminAuthMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Accounts == nil {
		return nil, fmt.Errorf("nil Accounts handler")
	}
	if deps.AdminAuthMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/auth/v1", func(r chi.Router) {
		// --- Public auth ---
		r.Post("/register", deps.Auth.Register)
		if deps.LoginRateMW != nil {
			r.With(deps.LoginRateMW).Post("/login", deps.Auth.Login)
		} else {
			r.Post("/login", deps.Auth.Login)
		}

		// --- Admin (privileged) ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.AdminAuthMW)

			r.Get("/accounts", deps.Accounts.List)
			r.Post("/accounts", deps.Accounts.Create)
			r.Get("/accounts/{username}", deps.Accounts.Get)
			r.Post("/accounts/{username}/unlock", deps.Accounts.Unlock)
			r.Delete("/accounts/{username}", deps.Accounts.Remove)

			r.Get("/events", deps.Accounts.Events)
		})
	})

	return r, nil
}
