// Package files serves resume and image uploads.
package files

import (
	"errors"
	"mime/multipart"
	"net/http"

	"eventhub/internal/common"
	"eventhub/internal/dto"
	"eventhub/internal/handler"
	"eventhub/internal/middleware"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	ResumeField = "resume"
	ImageField  = "image"
)

// formFile returns the uploaded part, or nil when the field is absent.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}

// UploadResumeHandler 上傳履歷（PDF/DOC/DOCX）
// @Summary     上傳履歷
// @Tags        resume
// @Accept      multipart/form-data
// @Produce     json
// @Param       resume formData file true "履歷檔案"
// @Success     201    {object} model.Resume
// @Failure     400    {object} dto.HTTPError
// @Failure     401    {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /resume/upload [post]
func UploadResumeHandler(svc *service.Resumes) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "not authorized"})
		}
		fh, err := formFile(c, ResumeField)
		if err != nil {
			return handler.BadRequest(c, err)
		}

		r, err := svc.Upload(c.Request().Context(), u.ID, fh)
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusCreated, r)
	}
}

// ListResumesHandler 列出當前使用者的履歷
// @Summary     我的履歷
// @Tags        resume
// @Produce     json
// @Success     200 {array}  model.Resume
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /resume [get]
func ListResumesHandler(svc *service.Resumes) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "not authorized"})
		}
		list, err := svc.ListForUser(c.Request().Context(), u.ID)
		if err != nil {
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusOK, list)
	}
}

// UploadImageHandler 上傳活動圖片
// @Summary     上傳圖片
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       image formData file true "圖片檔案"
// @Success     201   {object} dto.URLResponse
// @Failure     400   {object} dto.HTTPError
// @Failure     401   {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /upload [post]
func UploadImageHandler(svc *service.Uploads) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := formFile(c, ImageField)
		if err != nil {
			return handler.BadRequest(c, err)
		}
		url, err := svc.UploadImage(c.Request().Context(), fh)
		if err != nil {
			if errors.Is(err, common.ErrValidation) {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "No file uploaded"})
			}
			return handler.Fail(c, err, "")
		}
		return c.JSON(http.StatusCreated, dto.URLResponse{URL: url})
	}
}
