// Package auth protects the SSE endpoint with basic or API key authentication.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/config"
)

const (
	// APIKeyHeader carries an API key. An "Authorization: Bearer <key>" header is accepted as well.
	APIKeyHeader = "X-API-Key"

	realm = `Basic realm="arc42-mcp"`
)

// excludedPaths bypass authentication
var excludedPaths = map[string]bool{
	"/health": true,
}

func isExcludedPath(path string) bool {
	return excludedPaths[path]
}

// NewMiddleware creates an authentication middleware based on settings
func NewMiddleware(settings config.AuthSettings) (func(http.Handler) http.Handler, error) {
	switch settings.Type {
	case config.AuthTypeNone, "":
		return func(next http.Handler) http.Handler {
			return next
		}, nil
	case config.AuthTypeBasic:
		if settings.Basic.Username == "" || settings.Basic.Password == "" {
			return nil, fmt.Errorf("basic auth requires non-empty username and password")
		}
		return guard(basicAuthenticator(settings.Basic), func(w http.ResponseWriter) {
			w.Header().Set("WWW-Authenticate", realm)
		}), nil
	case config.AuthTypeAPIKey:
		if len(settings.APIKeys) == 0 {
			return nil, fmt.Errorf("apikey auth requires at least one API key")
		}
		return guard(apiKeyAuthenticator(settings.APIKeys), nil), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", settings.Type)
	}
}

// guard rejects requests that fail authenticate, except on excluded paths.
func guard(authenticate func(*http.Request) bool, challenge func(http.ResponseWriter)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExcludedPath(r.URL.Path) || authenticate(r) {
				next.ServeHTTP(w, r)
				return
			}

			slog.Warn("Rejected unauthenticated request", "path", r.URL.Path, "remote", r.RemoteAddr)
			if challenge != nil {
				challenge(w)
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

func basicAuthenticator(settings config.BasicAuthSettings) func(*http.Request) bool {
	return func(r *http.Request) bool {
		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(settings.Username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(settings.Password)) == 1
		return ok && userMatch && passMatch
	}
}

func apiKeyAuthenticator(apiKeys []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		key := requestAPIKey(r)
		if key == "" {
			return false
		}

		valid := false
		for _, validKey := range apiKeys {
			// no early exit, every key is compared
			if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
				valid = true
			}
		}
		return valid
	}
}

func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
