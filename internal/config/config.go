// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	Admin   AdminConfig
	SMTP    SMTPConfig
	Storage StorageConfig
	HTTP    HTTPConfig
	Log     LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env      string
	Port     string
	SiteName string // Shown in outgoing mail
}

// DBConfig holds the MySQL connection settings
type DBConfig struct {
	DSN string
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AdminConfig holds the single admin identity.
// PasswordHash, when set, is a bcrypt hash and takes precedence over Password.
type AdminConfig struct {
	Email        string
	Password     string
	PasswordHash string
	NotifyEmail  string // Where inquiry alerts are delivered
}

// SMTPConfig holds outbound mail settings. An empty Host selects the log sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// StorageConfig holds image storage settings
type StorageConfig struct {
	Driver       string // local or s3
	UploadDir    string
	BaseURL      string
	MaxBytes     int64
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	PublicURL    string
	UsePathStyle bool
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSOrigins        []string
	LoginRatePerMinute int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("site_name", "Agency")
	v.SetDefault("db_dsn", "root:root@tcp(127.0.0.1:3306)/agencyhub?parseTime=true")
	v.SetDefault("token_ttl", time.Hour)
	v.SetDefault("smtp_port", 587)
	v.SetDefault("email_timeout", 10*time.Second)
	v.SetDefault("storage_driver", "local")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("upload_max_bytes", int64(5<<20))
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_use_path_style", true)
	v.SetDefault("http_read_timeout", 15*time.Second)
	v.SetDefault("http_write_timeout", 30*time.Second)
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("login_rate_per_minute", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Load reads configuration. Priority (highest to lowest):
// 1. Process environment variables
// 2. .env in the working directory
// 3. Built-in defaults
func Load() (*Config, error) {
	// A missing .env is fine, we fall back to the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	adminEmail := v.GetString("admin_email")
	notify := v.GetString("admin_notify_email")
	if notify == "" {
		notify = adminEmail
	}

	return &Config{
		App: AppConfig{
			Env:      v.GetString("app_env"),
			Port:     v.GetString("port"),
			SiteName: v.GetString("site_name"),
		},
		DB: DBConfig{
			DSN: v.GetString("db_dsn"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			TTL:    v.GetDuration("token_ttl"),
		},
		Admin: AdminConfig{
			Email:        adminEmail,
			Password:     v.GetString("admin_password"),
			PasswordHash: v.GetString("admin_password_hash"),
			NotifyEmail:  notify,
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_username"),
			Password: v.GetString("smtp_password"),
			From:     v.GetString("smtp_from"),
			Timeout:  v.GetDuration("email_timeout"),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(v.GetString("storage_driver")),
			UploadDir:    v.GetString("upload_dir"),
			BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
			MaxBytes:     v.GetInt64("upload_max_bytes"),
			Endpoint:     v.GetString("s3_endpoint"),
			Region:       v.GetString("s3_region"),
			Bucket:       v.GetString("s3_bucket"),
			AccessKey:    v.GetString("s3_access_key"),
			SecretKey:    v.GetString("s3_secret_key"),
			PublicURL:    strings.TrimRight(v.GetString("s3_public_url"), "/"),
			UsePathStyle: v.GetBool("s3_use_path_style"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:        v.GetDuration("http_read_timeout"),
			WriteTimeout:       v.GetDuration("http_write_timeout"),
			CORSOrigins:        splitList(v.GetString("cors_origins")),
			LoginRatePerMinute: v.GetInt("login_rate_per_minute"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Admin.Email == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL is required"))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			errs = append(errs, errors.New("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q (want local or s3)", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
