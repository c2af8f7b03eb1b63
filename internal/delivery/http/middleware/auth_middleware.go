package middleware

import (
	"strings"

	deliverycontext "condor/internal/delivery/context"
	"condor/internal/delivery/http/response"
	"condor/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the authenticated
// user id on both the echo context and the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Autenticação necessária")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Token deve usar o formato Bearer")
		}

		userID, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Token inválido ou expirado")
		}

		c.Set(userIDContextKey, userID)

		ctx := c.Request().Context()
		ctx = deliverycontext.WithUserID(ctx, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// UserID returns the authenticated user id set by Authenticate. It returns
// zero when called outside an authenticated route.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDContextKey).(int64)

	return id
}
