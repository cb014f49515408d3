package middleware

import (
	"net/http"
	"strings"

	"movieportal/pkg/auth"
	apperrors "movieportal/pkg/errors"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Principal resolves the caller and stores it in the request context.
//
// Identity comes from the API Gateway authorizer when the request arrived
// through Lambda, then from a bearer token if a validator is configured.
// Requests with neither act as the anonymous principal. A bearer token that
// fails validation is rejected rather than downgraded to anonymous.
func Principal(adminID string, validator TokenValidator, errs *apperrors.ErrorHandler, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := gatewayUserID(r)

			if userID == "" && validator != nil {
				if token, ok := bearerToken(r); ok {
					claims, err := validator.ValidateToken(token)
					if err != nil {
						logger.Debug("Rejected bearer token", zap.Error(err))
						errs.Handle(w, r, apperrors.NewUnauthorizedError(err.Error()))
						return
					}
					userID = claims.UserID
				}
			}

			p := auth.NewPrincipal(userID, adminID)
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// gatewayUserID reads the authorizer context API Gateway attached to the
// Lambda event. JWT authorizers put the subject in claims; Lambda
// authorizers put it in their context map.
func gatewayUserID(r *http.Request) string {
	reqCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
	if !ok || reqCtx.Authorizer == nil {
		return ""
	}
	if jwt := reqCtx.Authorizer.JWT; jwt != nil {
		if sub := jwt.Claims["sub"]; sub != "" {
			return sub
		}
	}
	if id, ok := reqCtx.Authorizer.Lambda["userId"].(string); ok {
		return id
	}
	return ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
