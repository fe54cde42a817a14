package middleware

import (
	"net/http"

	"tourbook/pkg/auth"
	"tourbook/pkg/logger"
)

// Authentication resolves a bearer token, if present, into a Caller on
// the request context. It never rejects anonymous requests itself:
// public routes stay public, and handlers guarding protected routes
// check for a caller and answer 401 when none is attached. A token
// that is present but invalid is rejected here.
func Authentication(tokens *auth.TokenManager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.ExtractToken(header)
			if err != nil {
				rejectUnauthorized(w, log, r, err)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				rejectUnauthorized(w, log, r, err)
				return
			}

			ctx := auth.WithCaller(r.Context(), auth.Caller{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, err error) {
	log.Warn("Rejected invalid credentials",
		"request_id", requestIDFrom(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
}
