// @title        EventHub API
// @version      1.0
// @description  活動目錄、帳號、履歷上傳與 ML 轉送的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub/internal/blob"
	"eventhub/internal/cache"
	"eventhub/internal/config"
	"eventhub/internal/database"
	"eventhub/internal/gateway"
	"eventhub/internal/logging"
	"eventhub/internal/metrics"
	authmw "eventhub/internal/middleware"
	"eventhub/internal/router"
	"eventhub/internal/service"
	"eventhub/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "eventhub/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newS3Store      = func(ctx context.Context, opts blob.S3Options) (blob.Store, error) { return blob.NewS3(ctx, opts) }
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// newBlobStore returns the configured store and, for the local backend, the
// directory to serve under /uploads.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, string, error) {
	if cfg.Backend == config.BlobS3 {
		s, err := newS3Store(ctx, blob.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		return s, "", err
	}
	l, err := blob.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return l, l.Dir(), nil
}

func newEcho(log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, logging.Err(v.Error))
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	e.HTTPErrorHandler = errorHandler(log)
	return e
}

// errorHandler 回傳 {message}；未對應的錯誤直接回傳原始訊息
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			log.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Path()), logging.Err(err))
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, map[string]string{"message": msg})
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "write error response", logging.Err(err))
		}
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log := logging.New(cfg.Env)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	blobs, uploadDir, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	tokens, err := service.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	users := store.NewUserStore(db)
	events := store.NewEventStore(db)
	resumes := store.NewResumeStore(db)
	m := metrics.New()

	e := newEcho(log)
	router.Setup(e, router.Deps{
		DB:       db,
		Cache:    rdb,
		Auth:     authmw.NewAuth(tokens, users),
		Accounts: service.NewAccounts(users, resumes, tokens, log),
		Events:   service.NewEvents(events, users, log),
		Resumes:  service.NewResumes(resumes, users, blobs, log),
		Uploads:  service.NewUploads(blobs),
		Gateway: gateway.New(gateway.Options{
			BaseURL: cfg.MLServiceURL,
			ChatURL: cfg.HFAPIURL,
			ChatKey: cfg.HFAPIKey,
			Timeout: cfg.MLTimeout,
			Metrics: m,
			Logger:  log,
		}),
		Metrics:     m,
		UploadDir:   uploadDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Addr()), slog.String("env", cfg.Env))
		errCh <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		exitFunc(1)
	}
}
