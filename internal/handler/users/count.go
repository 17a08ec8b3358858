package users

import (
	"net/http"

	"eventhub/internal/dto"
	"eventhub/internal/handler"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

// CountUsersHandler 回傳註冊使用者總數（公開）
// @Summary     使用者總數
// @Tags        users
// @Produce     json
// @Success     200 {object} dto.UserCountResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /users/count [get]
func CountUsersHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := accounts.CountUsers(c.Request().Context())
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusOK, dto.UserCountResponse{TotalUsers: n})
	}
}
