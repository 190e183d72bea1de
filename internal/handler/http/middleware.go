package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/egalea504/LightBnB/internal/auth"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
	"github.com/egalea504/LightBnB/pkg/httputil"
	"github.com/egalea504/LightBnB/pkg/middleware"
)

var (
	errTokenRevoked  = errors.New("token revoked")
	errMissingClaims = apperrors.Unauthorized("authentication required")
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewTokenValidator validates access tokens with tokens and rejects those
// found on the revocation list. A denylist lookup failure rejects the token.
func NewTokenValidator(tokens *auth.JWTManager, revoked RevocationChecker) middleware.TokenValidator {
	return func(ctx context.Context, token string) (*middleware.Claims, error) {
		claims, err := tokens.Validate(token)
		if err != nil {
			return nil, err
		}

		isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if isRevoked {
			return nil, errTokenRevoked
		}

		return &middleware.Claims{
			UserID:    claims.UserID,
			Email:     claims.Email,
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		}, nil
	}
}

// ContentTypeJSON rejects POST requests whose body is not JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.ContentLength != 0 {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
