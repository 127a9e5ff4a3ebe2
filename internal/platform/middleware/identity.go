package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"domainstore/internal/identity"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// InitDataHeader carries the signed identity blob the mini-app shell attaches
// to every call.
const InitDataHeader = "X-Init-Data"

// RequireIdentity validates the host-supplied identity and injects it into
// the request context. Requests without a usable identity fail fast here,
// before any business logic or network call runs.
func RequireIdentity(botToken string, skipValidation bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := identity.ParseInitData(r.Header.Get(InitDataHeader), botToken, skipValidation)
			if err != nil {
				logger.WarnContext(r.Context(), "identity unavailable",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				writeIdentityError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithUser(r.Context(), user)))
		})
	}
}

func writeIdentityError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(dErrors.CodeOf(err)))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(dErrors.CodeOf(err)),
		"message": dErrors.MessageOf(err),
	})
}
