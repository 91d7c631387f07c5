package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Surreal SurrealConfig `yaml:"surreal"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Counter CounterConfig `yaml:"counter"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// SurrealConfig holds SurrealDB connection settings.
type SurrealConfig struct {
	URL       string `yaml:"url"       env:"SURREAL_URL"       env-default:"ws://localhost:8000/rpc"`
	Namespace string `yaml:"namespace" env:"SURREAL_NAMESPACE" env-default:"jaapghar"`
	Database  string `yaml:"database"  env:"SURREAL_DATABASE"  env-default:"jaap"`
	Username  string `yaml:"username"  env:"SURREAL_USERNAME"  env-default:"root"`
	Password  string `yaml:"password"  env:"SURREAL_PASSWORD"  env-required:"true"`

	// PingTimeout bounds the health probe's round trip to the remote store.
	PingTimeout time.Duration `yaml:"ping_timeout" env:"SURREAL_PING_TIMEOUT" env-default:"3s"`
}

// MirrorConfig holds settings for the on-device mirror store.
type MirrorConfig struct {
	Path        string        `yaml:"path"         env:"MIRROR_PATH"         env-default:"./jaapghar-mirror.db"`
	OpenTimeout time.Duration `yaml:"open_timeout" env:"MIRROR_OPEN_TIMEOUT" env-default:"2s"`
}

// CounterConfig holds the synchronization engine settings.
type CounterConfig struct {
	// ReadBudget / WriteBudget bound every remote read / write; on expiry
	// the engine falls back to mirrored data instead of blocking.
	ReadBudget  time.Duration `yaml:"read_budget"  env:"COUNTER_READ_BUDGET"  env-default:"8s"`
	WriteBudget time.Duration `yaml:"write_budget" env:"COUNTER_WRITE_BUDGET" env-default:"5s"`

	// SevaksRaw lists the fixed identities as "id:Display Name" pairs.
	SevaksRaw string `yaml:"sevaks" env:"COUNTER_SEVAKS" env-default:"sevak1:Sevak 1,sevak2:Sevak 2"`

	// ResetToken must be typed verbatim to enable the total reset.
	ResetToken string `yaml:"reset_token" env:"COUNTER_RESET_TOKEN" env-default:"RESET"`

	// Sevaks is parsed from SevaksRaw during validation.
	Sevaks []Sevak `yaml:"-" env:"-"`
}

// Sevak is one fixed identity from the roster.
type Sevak struct {
	ID          string
	DisplayName string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
