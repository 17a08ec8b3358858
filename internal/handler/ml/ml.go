// Package ml relays requests to the external inference service and the
// hosted chatbot.
package ml

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"eventhub/internal/dto"
	"eventhub/internal/gateway"
	"eventhub/internal/handler"

	"github.com/labstack/echo/v4"
)

// maxPayload caps the relayed request body. Larger bodies are rejected, not cut.
var maxPayload int64 = 1 << 20

// RelayHandler 轉送請求至 ML 服務並原樣回傳
// @Summary     ML 轉送
// @Description endpoint 為 recommend、resume 或 chatbot，請求與回應皆不做轉換
// @Tags        ml
// @Accept      json
// @Produce     json
// @Param       body body     object true "任意 JSON"
// @Success     200  {object} object
// @Failure     401  {object} dto.HTTPError
// @Failure     413  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /ml/recommend [post]
// @Router      /ml/resume [post]
// @Router      /ml/chatbot [post]
func RelayHandler(gw *gateway.Gateway, endpoint string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := http.MaxBytesReader(c.Response(), c.Request().Body, maxPayload)
		payload, err := io.ReadAll(body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return c.JSON(http.StatusRequestEntityTooLarge, dto.HTTPError{Message: "Payload too large"})
			}
			return handler.BadRequest(c, fmt.Errorf("read body: %v", err))
		}
		out, err := gw.Forward(c.Request().Context(), endpoint, payload)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "ML service error"})
		}
		return c.JSONBlob(http.StatusOK, out)
	}
}

// ChatHandler 與聊天機器人對話（公開）
// @Summary     Chat
// @Tags        ml
// @Accept      json
// @Produce     json
// @Param       body body     dto.ChatRequest true "訊息"
// @Success     200  {object} dto.ChatResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /chat [post]
func ChatHandler(gw *gateway.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ChatRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Errorf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		reply, err := gw.Chat(c.Request().Context(), req.Message)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "Chatbot error"})
		}
		return c.JSON(http.StatusOK, dto.ChatResponse{Response: reply})
	}
}
