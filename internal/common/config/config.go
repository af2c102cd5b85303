package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable holding an optional YAML config file.
const ConfigPathEnv = "YOCONFIG"

var ErrMissingEndpoint = errors.New("webhook endpoint is not set (SLACK_API_ENDPOINT)")

type Config struct {
	Endpoint              string `yaml:"endpoint"`
	Listen                string `yaml:"listen"`
	TimeoutMs             uint   `yaml:"timeoutMs"`
	LogLevel              string `yaml:"logLevel"`
	SurfaceDeliveryErrors bool   `yaml:"surfaceDeliveryErrors"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

var envBindings = map[string]string{
	"endpoint":              "SLACK_API_ENDPOINT",
	"listen":                "YO_LISTEN",
	"timeoutMs":             "YO_TIMEOUT_MS",
	"logLevel":              "YO_LOG_LEVEL",
	"surfaceDeliveryErrors": "YO_SURFACE_DELIVERY_ERRORS",
}

// Load builds the process configuration from defaults, the optional YAML file
// named by YOCONFIG and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", ":8080")
	v.SetDefault("timeoutMs", 10000)
	v.SetDefault("logLevel", "info")
	v.SetDefault("surfaceDeliveryErrors", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if path := os.Getenv(ConfigPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config path (%s=%s): %w", ConfigPathEnv, path, err)
		}

		fileConfig := map[string]any{}
		if err := yaml.Unmarshal(raw, &fileConfig); err != nil {
			return nil, fmt.Errorf("could not parse config path (%s=%s): %w", ConfigPathEnv, path, err)
		}

		if err := v.MergeConfigMap(fileConfig); err != nil {
			return nil, err
		}
	}

	config := &Config{
		Endpoint:              v.GetString("endpoint"),
		Listen:                v.GetString("listen"),
		TimeoutMs:             v.GetUint("timeoutMs"),
		LogLevel:              v.GetString("logLevel"),
		SurfaceDeliveryErrors: v.GetBool("surfaceDeliveryErrors"),
	}

	if config.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	return config, nil
}
