package middleware

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

const (
	claimsKey = "claims"
	userKey   = "user"
)

// UserResolver loads the user a verified token belongs to.
type UserResolver interface {
	Identify(ctx context.Context, userID string) (*model.User, error)
}

// Authenticate requires a valid session token, from the token cookie or else a
// bearer header, issued to a user that still exists.
func Authenticate(tokens *auth.JWTService, users UserResolver) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookie + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  claimsKey,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.VerifyToken(raw)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrInvalidToken) {
				return apperrors.New(apperrors.ErrUnauthenticated, "Invalid or expired token")
			}
			return apperrors.New(apperrors.ErrUnauthenticated, "Authentication required")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				return apperrors.ErrUnauthenticated
			}
			user, err := users.Identify(c.Request().Context(), claims.UserID)
			if err != nil {
				return err
			}
			c.Set(userKey, user)
			return next(c)
		})
	}
}

// CurrentUser returns the user resolved by Authenticate.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userKey).(*model.User)
	return user, ok && user != nil
}

// RequireAdmin lets ADMIN and MODERATOR through.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(model.Role.CanModerate, "Admin or moderator access required")
}

// RequireAdminOnly lets only ADMIN through.
func RequireAdminOnly() echo.MiddlewareFunc {
	return requireRole(func(r model.Role) bool { return r == model.RoleAdmin }, "Admin access required")
}

func requireRole(allowed func(model.Role) bool, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperrors.New(apperrors.ErrUnauthenticated, "Authentication required")
			}
			if !allowed(user.Role) {
				return apperrors.New(apperrors.ErrForbidden, message)
			}
			return next(c)
		}
	}
}
