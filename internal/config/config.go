// Package config provides centralized runtime configuration for the converter
// binaries. Settings come from environment variables (optionally seeded from a
// .env file) with defaults, and are validated on startup to fail fast.
//
// The format and header descriptors that drive a conversion are separate
// documents; see core.LoadDescriptors.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	Paths    PathsConfig
	Output   OutputConfig
	Limits   LimitsConfig
	Server   ServerConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// PathsConfig locates the descriptor files and the output directory.
type PathsConfig struct {
	// FormatDescriptor is the format descriptor path (default: formato-entrada.json)
	FormatDescriptor string `env:"CONVERTIDOR_FORMAT_PATH" default:"formato-entrada.json"`

	// HeaderDescriptor is the header descriptor path (default: encabezado-tabla.json)
	HeaderDescriptor string `env:"CONVERTIDOR_HEADER_PATH" default:"encabezado-tabla.json"`

	// OutputDir is where salida-*.csv files are written (default: working directory)
	OutputDir string `env:"CONVERTIDOR_OUTPUT_DIR" default:"."`
}

// OutputConfig controls how the rendered CSV is written.
type OutputConfig struct {
	// Encoding is the output text encoding unless the format descriptor
	// sets codificacionSalida (default: latin1)
	Encoding string `env:"CONVERTIDOR_OUTPUT_ENCODING" envAlt:"OUTPUT_ENCODING" default:"latin1"`
}

// LimitsConfig bounds concurrent conversions.
type LimitsConfig struct {
	// MaxConcurrent is the number of conversions allowed to run at once (default: 5)
	MaxConcurrent int `env:"CONVERTIDOR_MAX_CONCURRENT" default:"5"`

	// QueueWait is how long a conversion waits for a free slot (default: 20s).
	// It must be shorter than SERVER_REQUEST_TIMEOUT so a busy server can
	// still answer with BUSY001.
	QueueWait time.Duration `env:"CONVERTIDOR_QUEUE_WAIT" default:"20s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response and must
	// not be shorter than RequestTimeout (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxBodySize caps an uploaded input file in bytes (default: 10MB)
	MaxBodySize int64 `env:"SERVER_MAX_BODY_SIZE" default:"10485760"`
}

// SecurityConfig holds request trust and authentication settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs or IPs whose X-Real-IP and
	// X-Forwarded-For headers are honoured, comma separated (default: none)
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey enables X-API-Key checks on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys are the accepted keys, comma separated
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
