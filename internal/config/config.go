// Package config loads PromptSim configuration from defaults, config files,
// .env files, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"promptsim/internal/data/embedded"
	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"
)

// EnvPrefix is the prefix for PromptSim environment variables.
const EnvPrefix = "PROMPTSIM"

// Configuration keys.
const (
	KeyProvider         = "provider"
	KeyModel            = "model"
	KeyBaseURL          = "base_url"
	KeyAPIKey           = "api_key"
	KeyTemperature      = "temperature"
	KeyMaxTokens        = "max_tokens"
	KeySystemPrompt     = "system_prompt"
	KeySystemPromptFile = "system_prompt_file"
	KeyTheme            = "theme"
	KeyMarkdown         = "markdown"
	KeyRequestTimeout   = "request_timeout"
	KeyLogLevel         = "log_level"
	KeyLogFile          = "log_file"
	KeyDebugNetwork     = "debug_network"
)

// Config is the resolved runtime configuration.
type Config struct {
	Provider       string
	Model          string
	BaseURL        string
	APIKey         string
	Temperature    float64
	HasTemperature bool
	MaxTokens      int
	SystemPrompt   string
	Theme          string
	Markdown       bool
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
	DebugNetwork   bool

	// ConfigDir is the directory searched for config.yaml and .env.
	ConfigDir string

	lookup func(string) (string, bool)
}

// Paths tells the loader where to look for configuration files.
type Paths struct {
	ConfigDir string // user configuration directory; empty means the XDG default
	WorkDir   string // directory searched for a local .env; empty means the process working directory
}

// Loader resolves configuration through a viper instance.
// Flags bound to the viper instance before Load take precedence over every other source.
type Loader struct {
	v      *viper.Viper
	paths  Paths
	dotenv map[string]string
}

// NewLoader creates a loader backed by v. A nil v creates a fresh viper instance.
func NewLoader(v *viper.Viper, paths Paths) *Loader {
	if v == nil {
		v = viper.New()
	}
	return &Loader{v: v, paths: paths, dotenv: make(map[string]string)}
}

// Viper returns the underlying viper instance so callers can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SetDefaults registers the default value of every configuration key.
func (l *Loader) SetDefaults() {
	l.v.SetDefault(KeyProvider, "gemini")
	l.v.SetDefault(KeyModel, "")
	l.v.SetDefault(KeyBaseURL, "")
	l.v.SetDefault(KeyAPIKey, "")
	l.v.SetDefault(KeyMaxTokens, 0)
	l.v.SetDefault(KeySystemPrompt, embedded.DefaultSystemPrompt())
	l.v.SetDefault(KeySystemPromptFile, "")
	l.v.SetDefault(KeyTheme, "default")
	l.v.SetDefault(KeyMarkdown, true)
	l.v.SetDefault(KeyRequestTimeout, time.Duration(0))
	l.v.SetDefault(KeyLogLevel, "")
	l.v.SetDefault(KeyLogFile, "")
	l.v.SetDefault(KeyDebugNetwork, false)
}

// Load reads all configuration sources and returns the resolved configuration.
// Priority (highest to lowest): flags > environment > .env files > config.yaml > defaults.
// A local .env wins over the .env in the config directory.
func (l *Loader) Load() (*Config, error) {
	l.SetDefaults()

	configDir := l.paths.ConfigDir
	if configDir == "" {
		dir, err := UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(configDir)
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("Config file loaded", "path", l.v.ConfigFileUsed())
	}

	if err := l.loadDotEnv(filepath.Join(configDir, ".env")); err != nil {
		return nil, err
	}
	workDir := l.paths.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}
	if workDir != "" {
		if err := l.loadDotEnv(filepath.Join(workDir, ".env")); err != nil {
			return nil, err
		}
	}
	if err := l.mergeDotEnv(); err != nil {
		return nil, err
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	l.v.AutomaticEnv()

	cfg := &Config{
		Provider:       strings.ToLower(strings.TrimSpace(l.v.GetString(KeyProvider))),
		Model:          strings.TrimSpace(l.v.GetString(KeyModel)),
		BaseURL:        strings.TrimSpace(l.v.GetString(KeyBaseURL)),
		APIKey:         strings.TrimSpace(l.v.GetString(KeyAPIKey)),
		MaxTokens:      l.v.GetInt(KeyMaxTokens),
		SystemPrompt:   l.v.GetString(KeySystemPrompt),
		Theme:          l.v.GetString(KeyTheme),
		Markdown:       l.v.GetBool(KeyMarkdown),
		RequestTimeout: l.v.GetDuration(KeyRequestTimeout),
		LogLevel:       l.v.GetString(KeyLogLevel),
		LogFile:        l.v.GetString(KeyLogFile),
		DebugNetwork:   l.v.GetBool(KeyDebugNetwork),
		ConfigDir:      configDir,
		lookup:         l.lookupEnv,
	}
	if l.v.IsSet(KeyTemperature) {
		cfg.Temperature = l.v.GetFloat64(KeyTemperature)
		cfg.HasTemperature = true
	}

	if path := strings.TrimSpace(l.v.GetString(KeySystemPromptFile)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read system prompt file %s: %w", path, err)
		}
		cfg.SystemPrompt = strings.TrimRight(string(data), "\n")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv reads a .env file into the loader. Missing files are not an error.
func (l *Loader) loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for key, value := range envMap {
		l.dotenv[key] = value
	}
	logger.Debug(".env file loaded", "path", path, "keys", len(envMap))
	return nil
}

// mergeDotEnv copies PROMPTSIM_* values from .env files into the config layer.
func (l *Loader) mergeDotEnv() error {
	values := make(map[string]any)
	prefix := EnvPrefix + "_"
	for key, value := range l.dotenv {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, prefix))] = value
	}
	if len(values) == 0 {
		return nil
	}
	if err := l.v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge .env values: %w", err)
	}
	return nil
}

// lookupEnv checks the process environment first, then values read from .env files.
func (l *Loader) lookupEnv(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value, true
	}
	value, ok := l.dotenv[key]
	return value, ok && value != ""
}

// Validate checks value ranges that the providers would otherwise reject late.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	if c.HasTemperature && (c.Temperature < 0 || c.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// ResolveProvider fills the model and API key from a provider catalog entry
// when they were not configured explicitly.
func (c *Config) ResolveProvider(entry simtypes.ProviderCatalogEntry) error {
	if c.Model == "" {
		c.Model = entry.DefaultModel
	}
	if c.BaseURL == "" && entry.ClientType == "openai" && entry.BaseURL != "" {
		c.BaseURL = entry.BaseURL
	}
	if c.APIKey != "" {
		return nil
	}

	lookup := c.lookup
	if lookup == nil {
		lookup = func(key string) (string, bool) {
			value, ok := os.LookupEnv(key)
			return value, ok && value != ""
		}
	}
	for _, name := range entry.APIKeyEnv {
		if value, ok := lookup(name); ok {
			c.APIKey = strings.TrimSpace(value)
			logger.Debug("API key found for provider", "provider", entry.ID, "env_var", name)
			return nil
		}
	}
	return fmt.Errorf("%s API key not found. Please set one of: %s", entry.ID, strings.Join(entry.APIKeyEnv, ", "))
}

// ModelConfig returns the model configuration passed to LLM clients.
func (c *Config) ModelConfig() *simtypes.ModelConfig {
	params := make(map[string]any)
	if c.HasTemperature {
		params["temperature"] = c.Temperature
	}
	if c.MaxTokens > 0 {
		params["max_tokens"] = c.MaxTokens
	}
	return &simtypes.ModelConfig{
		Provider:   c.Provider,
		BaseModel:  c.Model,
		BaseURL:    c.BaseURL,
		Parameters: params,
	}
}

// UserConfigDir returns the PromptSim configuration directory.
func UserConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "promptsim"), nil
}
