package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	MongoDB     MongoDBConfig     `mapstructure:"mongodb"`
	API         APIConfig         `mapstructure:"api"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Name            string        `mapstructure:"name"`
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoDBConfig struct {
	URI                    string        `mapstructure:"uri"`
	Database               string        `mapstructure:"database"`
	ConnectTimeout         time.Duration `mapstructure:"connect_timeout"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
}

// APIConfig controls behavior of the HTTP handlers.
type APIConfig struct {
	// MaskReadErrors makes GET /api/gold answer an empty list instead of a 500
	// when the store fails.
	MaskReadErrors   bool     `mapstructure:"mask_read_errors"`
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
}

type DiagnosticsConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Encoding    string   `mapstructure:"encoding"`
	OutputPaths []string `mapstructure:"output_paths"`
}

// Environment variables read by the service outside the GOLDSHOP_ prefix.
const (
	EnvPort         = "PORT"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvDatabaseName = "DATABASE_NAME"
)

const envPrefix = "GOLDSHOP"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "gold-shop")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "")
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("mongodb.server_selection_timeout", 5*time.Second)

	v.SetDefault("api.mask_read_errors", true)
	v.SetDefault("api.cors_allow_origins", []string{"*"})

	v.SetDefault("diagnostics.timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output_paths", []string{"stdout"})
}

// Load reads configuration from the optional YAML file at configPath and the
// environment. An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for compatibility with existing deployments.
	bindings := map[string]string{
		"server.port":      EnvPort,
		"mongodb.uri":      EnvDatabaseURL,
		"mongodb.database": EnvDatabaseName,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		// Read config file
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	return &config, nil
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
