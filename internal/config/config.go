package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API     *APIConfig     `mapstructure:"api"`
	Gin     *GinConfig     `mapstructure:"gin"`
	Store   *StoreConfig   `mapstructure:"store"`
	Bridge  *BridgeConfig  `mapstructure:"bridge"`
	Tracing *TracingConfig `mapstructure:"tracing"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type StoreConfig struct {
	DataDir string `mapstructure:"data_dir"`
	Layout  string `mapstructure:"layout"`
}

type BridgeConfig struct {
	Executable  string        `mapstructure:"executable"`
	Args        []string      `mapstructure:"args"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", "8765")
	v.SetDefault("api.base_url", "127.0.0.1:8765")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost", "file://"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.token_ttl", 12*time.Hour)
	v.SetDefault("gin.mode", "release")
	v.SetDefault("store.data_dir", "./data")
	v.SetDefault("store.layout", "v2")
	v.SetDefault("bridge.executable", "eventconsole")
	v.SetDefault("bridge.args", []string{})
	v.SetDefault("bridge.timeout", 15*time.Second)
	v.SetDefault("bridge.settle_delay", 150*time.Millisecond)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "eventdesk")
}

// Load reads the YAML file at path, then applies EVENTDESK_* environment
// overrides. A missing file leaves the defaults in place.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("eventdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile reports a missing file as a plain fs error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	return conf, nil
}

var ErrMissingSigningKey = errors.New("api.jwt_signing_key is required")

// Validate checks what the HTTP surface needs; CLI commands that never issue
// tokens skip it.
func (c *APIConfig) Validate() error {
	if c.JWTSigningKey == "" {
		return ErrMissingSigningKey
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("api.token_ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}
