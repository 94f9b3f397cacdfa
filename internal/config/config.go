package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	DataDir string        `yaml:"data_dir,omitempty"`
	AI      AIConfig      `yaml:"ai,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// DefaultModel is the free-tier Gemini model the assistant talks to.
const DefaultModel = "gemini-2.5-flash"

func DefaultConfig() *Config {
	return &Config{
		DataDir: filepath.Join(getExecutableDir(), "data"),
		AI: AIConfig{
			BaseURL: DefaultBaseURL,
			Model:   DefaultModel,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".research-agent.yaml")
}

// Load reads the config file from the default location, falling back to
// defaults when it does not exist, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads the config file at the given path, falling back to
// defaults when it does not exist, then applies environment overrides.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over the file config. A .env file in
// the working directory is honored the same way the original deployment was
// configured.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("RESEARCH_AGENT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = DefaultBaseURL
	}
	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
}

// HasCredential reports whether a backend API key is configured. Absence is
// not a startup error; it surfaces on the first capability call.
func (c *Config) HasCredential() bool {
	return c.AI.APIKey != ""
}

// Save writes the config to the default location.
func (c *Config) Save() error {
	return c.SaveToPath(ConfigPath())
}

// SaveToPath writes the config as YAML to the given path.
func (c *Config) SaveToPath(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
