package config

import (
	"os"
	"time"

	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		GRPC       `yaml:"grpc"`
		Prometheus `yaml:"prometheus"`
		Backend    `yaml:"backend"`
		Logs       `yaml:"logs"`
		Auth       `yaml:"auth"`
		Activity   `yaml:"activity"`
		PG         `yaml:"postgres"`
		Kafka      `yaml:"kafka"`
		Alerts     `yaml:"alerts"`
	}

	App struct {
		Name    string `yaml:"name" env-required:"true"`
		Version string `yaml:"version" env-required:"true"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	HTTP struct {
		Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
		SecureCookie    bool          `yaml:"secure_cookie" env:"HTTP_SECURE_COOKIE" env-default:"false"`
	}

	// GRPC with an empty port keeps the analytics service off.
	GRPC struct {
		Port      string `yaml:"port" env:"GRPC_PORT"`
		AuthToken string `yaml:"auth_token" env:"GRPC_AUTH_TOKEN"`
	}

	Prometheus struct {
		Port string `env-required:"true" yaml:"port" env:"PROMETHEUS_PORT"`
	}

	Backend struct {
		URL     string        `env-required:"true" yaml:"url" env:"BACKEND_URL"`
		Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
	}

	Logs struct {
		Root               string `yaml:"root" env:"LOGS_ROOT" env-default:"logs"`
		Timezone           string `yaml:"timezone" env:"LOGS_TIMEZONE" env-default:"Local"`
		MaxConcurrentReads int    `yaml:"max_concurrent_reads" env:"LOGS_MAX_CONCURRENT_READS" env-default:"4"`
	}

	Auth struct {
		PermissionsTTL time.Duration `yaml:"permissions_ttl" env:"AUTH_PERMISSIONS_TTL" env-default:"300s"`
		TokenTTL       time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"60s"`
		SessionTimeout time.Duration `yaml:"session_timeout" env:"AUTH_SESSION_TIMEOUT" env-default:"30m"`
		CookieName     string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"rbacpanel_session"`
	}

	Activity struct {
		Enabled    bool `yaml:"enabled" env:"ACTIVITY_ENABLED" env-default:"true"`
		MaxSizeMB  int  `yaml:"max_size_mb" env:"ACTIVITY_MAX_SIZE_MB" env-default:"10"`
		MaxBackups int  `yaml:"max_backups" env:"ACTIVITY_MAX_BACKUPS" env-default:"5"`
	}

	// PG with an empty URL disables alert history.
	PG struct {
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"5"`
		URL         string `yaml:"url" env:"PG_URL"`
	}

	// Kafka with no brokers disables alert publishing.
	Kafka struct {
		Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"rbacpanel.alerts"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"`
	}

	Alerts struct {
		MonitorInterval time.Duration `yaml:"monitor_interval" env:"ALERTS_MONITOR_INTERVAL" env-default:"0s"`
	}
)

const (
	envPath           = ".env"
	defaultConfigPath = "config/config.yaml"
)

// New loads the optional .env file, then the YAML file, then environment overrides.
// An empty path falls back to APP_CONFIG_PATH and then to config/config.yaml.
func New(path string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.WithField("file", envPath).Warnf("Cannot load env file: %v", err)
	}

	if path == "" {
		var ok bool
		path, ok = os.LookupEnv("APP_CONFIG_PATH")
		if !ok || path == "" {
			log.WithField("env_var", "APP_CONFIG_PATH").
				Info("Config path is not set, using default")
			path = defaultConfigPath
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

// Location resolves the timezone used for naive log timestamps.
func (l Logs) Location() (*time.Location, error) {
	if l.Timezone == "" || l.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return loc, nil
}
