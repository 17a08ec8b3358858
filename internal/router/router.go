package router

import (
	"net/http"
	"time"

	"eventhub/internal/blob"
	"eventhub/internal/cache"
	"eventhub/internal/database"
	"eventhub/internal/gateway"
	"eventhub/internal/handler"
	"eventhub/internal/handler/auth"
	"eventhub/internal/handler/events"
	"eventhub/internal/handler/files"
	"eventhub/internal/handler/ml"
	"eventhub/internal/handler/users"
	"eventhub/internal/metrics"
	"eventhub/internal/middleware"
	"eventhub/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由所需的所有依賴
type Deps struct {
	DB       database.DB
	Cache    cache.Cache
	Auth     *middleware.Auth
	Accounts *service.Accounts
	Events   *service.Events
	Resumes  *service.Resumes
	Uploads  *service.Uploads
	Gateway  *gateway.Gateway
	Metrics  *metrics.Metrics
	// UploadDir is served under /uploads when set (local blob backend).
	UploadDir string
	// CORSOrigins 允許跨來源呼叫的前端網址，空值表示全部允許
	CORSOrigins []string
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       int((12 * time.Hour).Seconds()),
	}))
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", d.Metrics.Handler())
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Static(blob.PublicPrefix, d.UploadDir)
	}

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 帳號
	api.POST("/auth/register", auth.RegisterHandler(d.Accounts))
	api.POST("/auth/login", auth.LoginHandler(d.Accounts))
	api.GET("/auth/profile", auth.ProfileHandler(d.Accounts), d.Auth.RequireAuth)
	api.GET("/users/count", users.CountUsersHandler(d.Accounts))

	// 活動：讀取公開，寫入限管理員
	api.GET("/events", events.ListEventsHandler(d.Events))
	api.GET("/events/stats", events.StatsHandler(d.Events), d.Auth.RequireAdmin)
	api.GET("/events/:id", events.GetEventHandler(d.Events))
	api.POST("/events", events.CreateEventHandler(d.Events), d.Auth.RequireAdmin)
	api.PUT("/events/:id", events.UpdateEventHandler(d.Events), d.Auth.RequireAdmin)
	api.DELETE("/events/:id", events.DeleteEventHandler(d.Events), d.Auth.RequireAdmin)

	// 履歷與圖片上傳
	api.POST("/resume/upload", files.UploadResumeHandler(d.Resumes), d.Auth.RequireAuth)
	api.GET("/resume", files.ListResumesHandler(d.Resumes), d.Auth.RequireAuth)
	api.POST("/upload", files.UploadImageHandler(d.Uploads), d.Auth.RequireAuth)

	// ML 轉送
	for _, ep := range []string{gateway.EndpointRecommend, gateway.EndpointResume, gateway.EndpointChatbot} {
		api.POST("/ml/"+ep, ml.RelayHandler(d.Gateway, ep), d.Auth.RequireAuth)
	}
	api.POST("/chat", ml.ChatHandler(d.Gateway))
}
