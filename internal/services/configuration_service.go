package services

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	shellcontext "datashell/internal/context"
	"datashell/internal/logger"
)

// Settings is the typed view of the configuration map.
type Settings struct {
	HTTPTimeout   time.Duration `mapstructure:"DSH_HTTP_TIMEOUT"`
	MaxFetchBytes int64         `mapstructure:"DSH_MAX_FETCH_BYTES"`
	Theme         string        `mapstructure:"DSH_THEME"`
}

// ConfigurationService loads configuration into the global context and
// exposes it as typed Settings.
type ConfigurationService struct {
	initialized bool
}

// NewConfigurationService creates a new ConfigurationService instance.
func NewConfigurationService() *ConfigurationService {
	return &ConfigurationService{}
}

// Name returns the service name "configuration" for registration.
func (c *ConfigurationService) Name() string {
	return "configuration"
}

// Initialize loads configuration, lowest priority first:
// defaults, config-dir .env, local .env, environment variables.
func (c *ConfigurationService) Initialize() error {
	if c.initialized {
		return nil
	}

	cfg := shellcontext.GetGlobalContext().Configuration()
	cfg.SetConfigMap(make(map[string]string))

	if err := cfg.LoadDefaults(); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := cfg.LoadConfigDotEnv(); err != nil {
		return fmt.Errorf("failed to load config .env: %w", err)
	}
	if err := cfg.LoadLocalDotEnv(); err != nil {
		return fmt.Errorf("failed to load local .env: %w", err)
	}
	if err := cfg.LoadEnvironmentVariables(); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	c.initialized = true
	logger.ServiceOperation(c.Name(), "initialize", "keys", len(cfg.GetConfigMap()))
	return nil
}

// GetConfigValue returns a raw configuration value, or "" when unset.
func (c *ConfigurationService) GetConfigValue(key string) (string, error) {
	if !c.initialized {
		return "", fmt.Errorf("configuration service not initialized")
	}
	value, _ := shellcontext.GetGlobalContext().Configuration().GetConfigValue(key)
	return value, nil
}

// SetConfigValue sets a configuration value. This is primarily for testing purposes.
func (c *ConfigurationService) SetConfigValue(key, value string) error {
	if !c.initialized {
		return fmt.Errorf("configuration service not initialized")
	}
	shellcontext.GetGlobalContext().Configuration().SetConfigValue(key, value)
	return nil
}

// Settings decodes the configuration map into Settings.
func (c *ConfigurationService) Settings() (Settings, error) {
	if !c.initialized {
		return Settings{}, fmt.Errorf("configuration service not initialized")
	}
	return DecodeSettings(shellcontext.GetGlobalContext().Configuration().GetConfigMap())
}

// DecodeSettings converts a string map into Settings, parsing durations and numbers.
func DecodeSettings(values map[string]string) (Settings, error) {
	var settings Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &settings,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// GetGlobalConfigurationService returns the configuration service from the global registry.
func GetGlobalConfigurationService() (*ConfigurationService, error) {
	return getGlobalService[*ConfigurationService]("configuration")
}
