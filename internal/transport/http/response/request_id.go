package response

import (
	"net/http"

	appctx "github.com/securitysvcs/auth-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request_id set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
