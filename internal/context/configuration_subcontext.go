package context

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of environment variables datashell reads configuration from.
const EnvPrefix = "DSH_"

// ConfigurationSubcontext defines the interface for configuration management functionality.
// This manages the configuration map and the sources it is loaded from.
type ConfigurationSubcontext interface {
	// Configuration map operations
	GetConfigMap() map[string]string
	SetConfigMap(configMap map[string]string)
	GetConfigValue(key string) (string, bool)
	SetConfigValue(key, value string)

	// Configuration loading operations, lowest priority first
	LoadDefaults() error
	LoadConfigDotEnv() error
	LoadLocalDotEnv() error
	LoadEnvironmentVariables() error

	// Test overrides
	SetTestEnvOverride(key, value string)
	ClearAllTestEnvOverrides()
	SetTestWorkingDir(path string)
	SetTestConfigDir(path string)

	// Parent context operations
	SetParentContext(parent TestModeProvider)

	// File system operations
	GetUserConfigDir() (string, error)
	GetWorkingDir() (string, error)
}

// TestModeProvider interface allows subcontexts to check test mode from parent context
type TestModeProvider interface {
	IsTestMode() bool
}

// DefaultConfig holds the values every configuration starts from.
var DefaultConfig = map[string]string{
	"DSH_HTTP_TIMEOUT":    "30s",
	"DSH_MAX_FETCH_BYTES": "67108864",
	"DSH_THEME":           "default",
}

// configurationSubcontext implements the ConfigurationSubcontext interface.
type configurationSubcontext struct {
	configMap   map[string]string
	configMutex sync.RWMutex // protects configMap

	parentContext    TestModeProvider
	testEnvOverrides map[string]string
	testWorkingDir   string
	testConfigDir    string
	testMutex        sync.RWMutex // protects the test overrides
}

// NewConfigurationSubcontext creates a new ConfigurationSubcontext instance.
func NewConfigurationSubcontext() ConfigurationSubcontext {
	return &configurationSubcontext{
		configMap:        make(map[string]string),
		testEnvOverrides: make(map[string]string),
	}
}

// NewConfigurationSubcontextFromContext returns the configuration of an existing ShellContext.
func NewConfigurationSubcontextFromContext(ctx *ShellContext) ConfigurationSubcontext {
	return ctx.configurationCtx
}

// SetParentContext attaches the context used to check test mode.
func (c *configurationSubcontext) SetParentContext(parent TestModeProvider) {
	c.parentContext = parent
}

func (c *configurationSubcontext) isTestMode() bool {
	return c.parentContext != nil && c.parentContext.IsTestMode()
}

// GetConfigMap returns a copy of the configuration map.
func (c *configurationSubcontext) GetConfigMap() map[string]string {
	c.configMutex.RLock()
	defer c.configMutex.RUnlock()

	result := make(map[string]string, len(c.configMap))
	for key, value := range c.configMap {
		result[key] = value
	}
	return result
}

// SetConfigMap replaces the entire configuration map.
func (c *configurationSubcontext) SetConfigMap(configMap map[string]string) {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()

	c.configMap = make(map[string]string, len(configMap))
	for key, value := range configMap {
		c.configMap[key] = value
	}
}

// GetConfigValue retrieves a configuration value by key.
func (c *configurationSubcontext) GetConfigValue(key string) (string, bool) {
	c.configMutex.RLock()
	defer c.configMutex.RUnlock()

	value, exists := c.configMap[key]
	return value, exists
}

// SetConfigValue sets a configuration value.
func (c *configurationSubcontext) SetConfigValue(key, value string) {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()
	c.configMap[key] = value
}

// LoadDefaults sets up default configuration values.
func (c *configurationSubcontext) LoadDefaults() error {
	for key, value := range DefaultConfig {
		c.SetConfigValue(key, value)
	}
	return nil
}

// LoadConfigDotEnv loads .env from the user's config directory (~/.config/datashell/.env).
func (c *configurationSubcontext) LoadConfigDotEnv() error {
	configDir, err := c.GetUserConfigDir()
	if err != nil {
		// Config directory access failure is not fatal
		return nil
	}
	return c.loadDotEnvFile(filepath.Join(configDir, ".env"))
}

// LoadLocalDotEnv loads .env from the working directory.
func (c *configurationSubcontext) LoadLocalDotEnv() error {
	workDir, err := c.GetWorkingDir()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return c.loadDotEnvFile(filepath.Join(workDir, ".env"))
}

// LoadEnvironmentVariables copies DSH_ prefixed variables into the configuration map.
// In test mode only the test overrides are consulted.
func (c *configurationSubcontext) LoadEnvironmentVariables() error {
	if c.isTestMode() {
		c.testMutex.RLock()
		defer c.testMutex.RUnlock()
		for key, value := range c.testEnvOverrides {
			if strings.HasPrefix(key, EnvPrefix) {
				c.SetConfigValue(key, value)
			}
		}
		return nil
	}

	for _, env := range os.Environ() {
		key, value, found := strings.Cut(env, "=")
		if found && strings.HasPrefix(key, EnvPrefix) {
			c.SetConfigValue(key, value)
		}
	}
	return nil
}

// loadDotEnvFile merges DSH_ prefixed keys of a dotenv file. A missing file is not an error.
func (c *configurationSubcontext) loadDotEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for key, value := range values {
		if strings.HasPrefix(key, EnvPrefix) {
			c.SetConfigValue(key, value)
		}
	}
	return nil
}

// SetTestEnvOverride sets an environment value visible to LoadEnvironmentVariables in test mode.
func (c *configurationSubcontext) SetTestEnvOverride(key, value string) {
	c.testMutex.Lock()
	defer c.testMutex.Unlock()
	c.testEnvOverrides[key] = value
}

// ClearAllTestEnvOverrides removes every test environment override.
func (c *configurationSubcontext) ClearAllTestEnvOverrides() {
	c.testMutex.Lock()
	defer c.testMutex.Unlock()
	c.testEnvOverrides = make(map[string]string)
}

// SetTestWorkingDir overrides the working directory used for the local .env.
func (c *configurationSubcontext) SetTestWorkingDir(path string) {
	c.testMutex.Lock()
	defer c.testMutex.Unlock()
	c.testWorkingDir = path
}

// SetTestConfigDir overrides the user config directory.
func (c *configurationSubcontext) SetTestConfigDir(path string) {
	c.testMutex.Lock()
	defer c.testMutex.Unlock()
	c.testConfigDir = path
}

// GetUserConfigDir returns ~/.config/datashell (or the platform equivalent).
func (c *configurationSubcontext) GetUserConfigDir() (string, error) {
	c.testMutex.RLock()
	override := c.testConfigDir
	c.testMutex.RUnlock()
	if override != "" {
		return override, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "datashell"), nil
}

// GetWorkingDir returns the process working directory, or the test override.
func (c *configurationSubcontext) GetWorkingDir() (string, error) {
	c.testMutex.RLock()
	override := c.testWorkingDir
	c.testMutex.RUnlock()
	if override != "" {
		return override, nil
	}
	return os.Getwd()
}
