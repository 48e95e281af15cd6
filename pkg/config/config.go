package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "WAREHOUSE"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Source    SourceConfig    `mapstructure:"source"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Reflection      bool          `mapstructure:"reflection"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LookupConfig struct {
	RequireID bool `mapstructure:"require_id"`
}

type SourceConfig struct {
	Kind         string `mapstructure:"kind"`
	Profile      string `mapstructure:"profile"`
	ProfilesFile string `mapstructure:"profiles_file"`
	Catalog      string `mapstructure:"catalog"`
	DBPath       string `mapstructure:"db_path"`
}

type TelemetryConfig struct {
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPURLPath    string `mapstructure:"otlp_url_path"`
	OTLPAuthHeader string `mapstructure:"otlp_auth_header"`
	OTLPInsecure   bool   `mapstructure:"otlp_insecure"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_addr", ":50051")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.reflection", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("lookup.require_id", false)
	v.SetDefault("source.kind", "static")
	v.SetDefault("source.profile", "")
	v.SetDefault("source.profiles_file", "")
	v.SetDefault("source.catalog", "")
	v.SetDefault("source.db_path", "warehouse-atlas.db")
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_url_path", "")
	v.SetDefault("telemetry.otlp_auth_header", "")
	v.SetDefault("telemetry.otlp_insecure", false)
}

// LoadConfig reads defaults, then the optional config file, then WAREHOUSE_* environment
// variables (WAREHOUSE_SERVER_GRPC_ADDR overrides server.grpc_addr).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.GRPCAddr == "" {
		return fmt.Errorf("server.grpc_addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	if c.Source.Kind == "" {
		return fmt.Errorf("source.kind is required")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
