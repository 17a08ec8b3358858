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

func authResponse(res *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		ID:        res.User.ID,
		Name:      res.User.Name,
		Email:     res.User.Email,
		IsAdmin:   res.User.IsAdmin,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}
}

// RegisterHandler 註冊新使用者並回傳 JWT
// @Summary     註冊使用者
// @Description 建立一般使用者帳號（永遠不是管理員），回傳身分與存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Errorf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}

		res, err := accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, common.ErrConflict) {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "User already exists"})
			}
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusCreated, authResponse(res))
	}
}
