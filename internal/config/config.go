package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	MessageRetention  int           `mapstructure:"message_retention" yaml:"message_retention"`
	RoomCodeLength    int           `mapstructure:"room_code_length" yaml:"room_code_length"`
	RoomTTL           time.Duration `mapstructure:"room_ttl" yaml:"room_ttl"`
	AppendRateLimit   int           `mapstructure:"append_rate_limit" yaml:"append_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
// RoomTTL 0 keeps rooms for the process lifetime; AppendRateLimit 0
// disables rate limiting.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MessageRetention:  100,
		RoomCodeLength:    6,
		RoomTTL:           0,
		AppendRateLimit:   0,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MessageRetention != 0 {
		c.MessageRetention = other.MessageRetention
	}
	if other.RoomCodeLength != 0 {
		c.RoomCodeLength = other.RoomCodeLength
	}
	if other.RoomTTL != 0 {
		c.RoomTTL = other.RoomTTL
	}
	if other.AppendRateLimit != 0 {
		c.AppendRateLimit = other.AppendRateLimit
	}
}
