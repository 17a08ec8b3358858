// Package events serves the event catalog. Reads are public; writes and the
// dashboard stats sit behind RequireAdmin in the router.
package events

import (
	"fmt"
	"net/http"
	"time"

	"eventhub/internal/dto"
	"eventhub/internal/handler"
	"eventhub/internal/model"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

const notFound = "Event not found"

var timeNow = time.Now

// ListEventsHandler 取得所有活動（新到舊）
// @Summary     列出活動
// @Tags        events
// @Produce     json
// @Success     200 {array}  model.Event
// @Failure     500 {object} dto.HTTPError
// @Router      /events [get]
func ListEventsHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.List(c.Request().Context())
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetEventHandler 依 ID 取得活動
// @Summary     取得活動
// @Tags        events
// @Produce     json
// @Param       id  path     string true "活動 ID"
// @Success     200 {object} model.Event
// @Failure     404 {object} dto.HTTPError
// @Router      /events/{id} [get]
func GetEventHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		e, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return handler.Fail(c, err, failMessage(err))
		}
		return c.JSON(http.StatusOK, e)
	}
}

// CreateEventHandler 建立活動（管理員）
// @Summary     建立活動
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       body body     dto.EventRequest true "活動資料"
// @Success     201  {object} model.Event
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /events [post]
func CreateEventHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.EventRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Errorf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}

		e, err := svc.Create(c.Request().Context(), service.EventInput{
			Title:       req.Title,
			Type:        req.Type,
			Date:        req.Date,
			Description: req.Desc,
			Image:       req.Image,
			Link:        req.Link,
		})
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusCreated, e)
	}
}

// UpdateEventHandler 部分更新活動（管理員），只覆寫請求中出現的欄位
// @Summary     更新活動
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       id   path     string           true "活動 ID"
// @Param       body body     model.EventPatch true "要更新的欄位"
// @Success     200  {object} model.Event
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /events/{id} [put]
func UpdateEventHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch model.EventPatch
		if err := (&echo.DefaultBinder{}).BindBody(c, &patch); err != nil {
			return handler.BadRequest(c, fmt.Errorf("無效的請求資料: %v", err))
		}

		e, err := svc.Update(c.Request().Context(), c.Param("id"), patch)
		if err != nil {
			return handler.Fail(c, err, failMessage(err))
		}
		return c.JSON(http.StatusOK, e)
	}
}

// DeleteEventHandler 刪除活動（管理員）
// @Summary     刪除活動
// @Tags        events
// @Produce     json
// @Param       id  path     string true "活動 ID"
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /events/{id} [delete]
func DeleteEventHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return handler.Fail(c, err, failMessage(err))
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event removed"})
	}
}

// StatsHandler 管理後台統計
// @Summary     活動統計
// @Description 依類型與最近八個月彙整活動數量，並回傳使用者總數
// @Tags        events
// @Produce     json
// @Success     200 {object} model.DashboardStats
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /events/stats [get]
func StatsHandler(svc *service.Events) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := svc.Stats(c.Request().Context(), timeNow())
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusOK, stats)
	}
}

func failMessage(err error) string {
	if handler.ErrorStatus(err) == http.StatusNotFound {
		return notFound
	}
	return ""
}
