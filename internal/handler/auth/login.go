package auth

import (
	"errors"
	"fmt"
	"net/http"

	"eventhub/internal/common"
	"eventhub/internal/dto"
	"eventhub/internal/handler"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳身分、管理員旗標與存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Errorf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}

		res, err := accounts.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "Invalid email or password"})
			}
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusOK, authResponse(res))
	}
}
