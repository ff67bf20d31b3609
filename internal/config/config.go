package config

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pders01/wayback-context/internal/cdx"
	"github.com/pders01/wayback-context/internal/readme"
	"github.com/spf13/viper"
)

// Config mirrors the layout of config.toml
type Config struct {
	CDX    CDXConfig    `toml:"cdx"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// CDXConfig configures the index query
type CDXConfig struct {
	Endpoint  string `toml:"endpoint"`
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
	MaxBytes  int64  `toml:"max_bytes"`
}

// OutputConfig configures the document that receives listings
type OutputConfig struct {
	Path string `toml:"path"`
}

// LogConfig configures diagnostics
type LogConfig struct {
	Level string `toml:"level"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		CDX: CDXConfig{
			Endpoint:  cdx.DefaultEndpoint,
			Timeout:   cdx.DefaultTimeout.String(),
			UserAgent: cdx.DefaultUserAgent,
			MaxBytes:  cdx.DefaultMaxBytes,
		},
		Output: OutputConfig{
			Path: readme.DefaultPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers the built-in configuration with viper
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("cdx.endpoint", d.CDX.Endpoint)
	v.SetDefault("cdx.timeout", d.CDX.Timeout)
	v.SetDefault("cdx.user_agent", d.CDX.UserAgent)
	v.SetDefault("cdx.max_bytes", d.CDX.MaxBytes)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// WriteTOML encodes cfg as TOML
func WriteTOML(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// GetCDXEndpoint returns the CDX search endpoint
func GetCDXEndpoint() string {
	return viper.GetString("cdx.endpoint")
}

// GetTimeout returns the request timeout, falling back to the default
// when the configured value is not a positive duration
func GetTimeout() time.Duration {
	timeout := viper.GetDuration("cdx.timeout")
	if timeout <= 0 {
		return cdx.DefaultTimeout
	}
	return timeout
}

// GetUserAgent returns the User-Agent sent to the archive
func GetUserAgent() string {
	return viper.GetString("cdx.user_agent")
}

// GetMaxBytes returns the response body limit
func GetMaxBytes() int64 {
	return viper.GetInt64("cdx.max_bytes")
}

// GetOutputPath returns the document path
func GetOutputPath() string {
	return viper.GetString("output.path")
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return viper.GetString("log.level")
}
