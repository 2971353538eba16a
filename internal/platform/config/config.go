package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Storage drivers soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Backup  BackupConfig  `yaml:"backup"`
}

type AppConfig struct {
	Name string `yaml:"name" validate:"required"`
	// Timezone del zoo (IANA), usada para la hora "actual" de la vista de estado.
	Timezone string `yaml:"timezone"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"oneof=memory postgres sqlite"`
	DSN         string `yaml:"dsn" validate:"required_if=Driver postgres"`
	SQLitePath  string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	Leeway    time.Duration `yaml:"leeway"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"omitempty,alphanum"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter" validate:"oneof=stdout otlp"`
	Endpoint    string  `yaml:"endpoint" validate:"required_if=Exporter otlp"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

// BackupConfig: destino de "zoo backup". Sin bucket se escribe en Dir.
type BackupConfig struct {
	Dir string `yaml:"dir"`

	S3Bucket    string `yaml:"s3_bucket"`
	S3Prefix    string `yaml:"s3_prefix"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint" validate:"omitempty,url"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

func Defaults() Config {
	return Config{
		App: AppConfig{Name: "zoo-admin"},
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverMemory, SQLitePath: "data/zoo.db", AutoMigrate: true},
		Log:     LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "zoo"},
		Tracing: TracingConfig{Exporter: "stdout", SampleRatio: 1},
		Backup:  BackupConfig{Dir: "backups", S3Region: "us-east-1"},
	}
}

// Load arma la config: defaults, luego el YAML en path (si existe), luego env.
// path vacío = solo defaults + env.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv: las variables de entorno pisan al archivo.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("APP_NAME", &cfg.App.Name)
	str("ZOO_TIMEZONE", &cfg.App.Timezone)
	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("DB_DSN", &cfg.Storage.DSN)
	str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	str("JWT_ISSUER", &cfg.Auth.Issuer)
	str("TRACING_EXPORTER", &cfg.Tracing.Exporter)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.Tracing.Endpoint)
	str("BACKUP_DIR", &cfg.Backup.Dir)
	str("BACKUP_S3_BUCKET", &cfg.Backup.S3Bucket)
	str("BACKUP_S3_PREFIX", &cfg.Backup.S3Prefix)
	str("AWS_REGION", &cfg.Backup.S3Region)
	str("BACKUP_S3_ENDPOINT", &cfg.Backup.S3Endpoint)

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.HTTP.Port = port
	}
	if v, ok := lookup("METRICS_ENABLED"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	if v, ok := lookup("DB_AUTO_MIGRATE"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
		}
		cfg.Storage.AutoMigrate = b
	}
	if v, ok := lookup("TRACING_ENABLED"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TRACING_ENABLED: %w", err)
		}
		cfg.Tracing.Enabled = b
	}

	// Si hay DSN y nadie eligió driver, se asume postgres.
	if _, ok := lookup("STORAGE_DRIVER"); !ok && cfg.Storage.DSN != "" && cfg.Storage.Driver == DriverMemory {
		cfg.Storage.Driver = DriverPostgres
	}

	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Tracing.Exporter = strings.ToLower(cfg.Tracing.Exporter)
	return nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: app.timezone: %w", err)
	}
	return nil
}

// Location resuelve App.Timezone ("Local" o vacío = zona del proceso).
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.App.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}
