package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
)

// userIDKey is the echo context key holding the authenticated user's id.
const userIDKey = "userID"

// Authenticate gates a route behind a bearer token. A missing token is an
// Unauthorized; a token that fails verification is a Forbidden. On success
// the resolved user id is attached to the request context. No database
// round trip happens here.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return apperrors.Unauthorized("You are not authorized")
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return apperrors.Forbidden("Invalid or expired token")
			}
			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return apperrors.Forbidden("Invalid or expired token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id set by Authenticate.
func UserID(c echo.Context) primitive.ObjectID {
	id, _ := c.Get(userIDKey).(primitive.ObjectID)
	return id
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
