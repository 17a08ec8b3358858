// Package config loads runtime settings from the environment, or from a YAML
// file named by CONFIG_PATH.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BlobLocal = "local"
	BlobS3    = "s3"
)

// Config 服務設定
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPAddr string `yaml:"http_addr" env:"HTTP_ADDR"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"*"`

	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" env-required:"true"`

	Redis `yaml:"redis"`
	JWT   `yaml:"jwt"`
	Blob  `yaml:"blob"`
	ML    `yaml:"ml"`
}

type Redis struct {
	RedisAddr     string `yaml:"addr" env:"REDIS_ADDR" env-required:"true"`
	RedisPassword string `yaml:"password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type JWT struct {
	JWTSecret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"720h"`
}

// Blob selects where uploaded files go. UploadDir is also the static root
// for the local backend.
type Blob struct {
	Backend     string `yaml:"backend" env:"BLOB_BACKEND" env-default:"local"`
	UploadDir   string `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"uploads"`
	S3Bucket    string `yaml:"s3_bucket" env:"S3_BUCKET"`
	S3Region    string `yaml:"s3_region" env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint  string `yaml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3AccessKey string `yaml:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey string `yaml:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3PublicURL string `yaml:"s3_public_url" env:"S3_PUBLIC_URL"`
}

type ML struct {
	MLServiceURL string        `yaml:"service_url" env:"ML_SERVICE_URL" env-default:"http://localhost:8000"`
	MLTimeout    time.Duration `yaml:"timeout" env:"ML_TIMEOUT" env-default:"30s"`
	HFAPIURL     string        `yaml:"hf_api_url" env:"HF_API_URL" env-default:"https://api-inference.huggingface.co/models/facebook/blenderbot-400M-distill"`
	HFAPIKey     string        `yaml:"hf_api_key" env:"HF_API_KEY"`
}

var (
	readConfig = cleanenv.ReadConfig
	readEnv    = cleanenv.ReadEnv
)

// Load 讀取設定並驗證
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := readConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := readEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations cleanenv tags cannot express.
func (c *Config) Validate() error {
	switch c.Backend {
	case BlobLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must be set for the local blob backend")
		}
	case BlobS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set for the s3 blob backend")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.Backend)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL)
	}
	return nil
}

// Addr returns the listen address; HTTP_ADDR wins over PORT.
func (c *Config) Addr() string {
	if c.HTTPAddr != "" {
		return c.HTTPAddr
	}
	return ":" + c.Port
}
