// FilePath: api/middleware/api.middleware.token.go
package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eibon93/vcelstva-hub/internal/errors"
)

type contextKey string

const deviceTokenKey contextKey = "device_token"

// DeviceToken extracts the device credential from the Authorization header
// of callback requests. Devices send "Authorization: Basic <base64 token>".
// A missing header passes an empty token through; whether an empty or wrong
// token is rejected is decided by the ingestion adapters, not here. A
// header that is present but malformed is always rejected.
func DeviceToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
			handleError(w, errors.NewTokenError("malformed authorization header", nil))
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			handleError(w, errors.NewTokenError("malformed authorization token", err))
			return
		}

		ctx := context.WithValue(r.Context(), deviceTokenKey, string(decoded))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext returns the device token extracted by DeviceToken, or an
// empty string.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(deviceTokenKey).(string)
	return token
}

func handleError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
}
