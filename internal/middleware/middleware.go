package middleware

import (
	"errors"
	"net/http"
	"strings"

	"eventhub/internal/common"
	"eventhub/internal/model"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// Auth resolves bearer tokens to stored users. The user is reloaded on every
// request, so a promotion or a deleted account takes effect immediately.
type Auth struct {
	tokens *service.Tokens
	users  service.UserRepository
}

func NewAuth(tokens *service.Tokens, users service.UserRepository) *Auth {
	return &Auth{tokens: tokens, users: users}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func (a *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		userID, err := a.tokens.Verify(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		u, err := a.users.GetByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			return err
		}
		c.Set(ContextUserKey, u)
		return next(c)
	}
}

func (a *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.RequireAuth(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		if !ok || !u.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, common.ErrForbidden.Error())
		}
		return next(c)
	})
}

// CurrentUser returns the user RequireAuth attached to the context.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}
