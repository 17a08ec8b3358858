package auth

import (
	"net/http"

	"eventhub/internal/dto"
	"eventhub/internal/handler"
	"eventhub/internal/middleware"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

// ProfileHandler 取得當前使用者與其履歷
// @Summary     取得個人資料
// @Tags        auth
// @Produce     json
// @Success     200 {object} service.Profile
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/profile [get]
func ProfileHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "not authorized"})
		}
		p, err := accounts.Profile(c.Request().Context(), u.ID)
		if err != nil {
			return handler.Fail(c, err, "User not found")
		}
		return c.JSON(http.StatusOK, p)
	}
}
