// Package config loads and validates application configuration from
// defaults, an optional config file, and TASKFLOW_-prefixed environment
// variables (environment wins).
package config

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Audit  AuditConfig  `mapstructure:"audit" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// DevMode includes diagnostic text in 500 responses. Never enable in
	// production; error envelopes stay generic without it.
	DevMode bool `mapstructure:"dev_mode"`
}

// AuthConfig contains identity-resolution settings. With an empty
// JWTSecret the server runs the static token stub; with a secret set it
// issues and verifies HMAC JWTs instead.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"        validate:"omitempty,min=32"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes" validate:"gte=0"`
}

// AuditConfig contains the operation-log settings.
type AuditConfig struct {
	// LogPath is the append-only file the operation logger writes to.
	LogPath string `mapstructure:"log_path" validate:"required"`
	// BufferSize is the capacity of the fire-and-forget entry queue.
	BufferSize int `mapstructure:"buffer_size" validate:"gt=0"`
}
