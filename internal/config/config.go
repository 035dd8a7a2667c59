package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"iva/internal/llm"
	"iva/internal/memory"
	"iva/internal/vision"
)

// AgentConfig bounds the control loop and image preprocessing.
type AgentConfig struct {
	MaxPlans    int `mapstructure:"max_plans"`
	ResizeWidth int `mapstructure:"resize_width"`
}

type Config struct {
	LLM      llm.Config            `mapstructure:"llm"`
	Florence vision.FlorenceConfig `mapstructure:"florence"`
	Storage  memory.SQLiteConfig   `mapstructure:"storage"`
	Agent    AgentConfig           `mapstructure:"agent"`
	LogFile  string                `mapstructure:"log_file"`
}

// Load reads cfgFile (or ./config.yaml, or $HOME/.iva/config.yaml) and layers
// IVA_* environment variables on top. A missing file falls back to defaults;
// a malformed one is an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.iva")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("IVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Backend) {
	case "", "gemini", "ollama":
	default:
		return fmt.Errorf("llm.backend must be gemini or ollama, got %q", c.LLM.Backend)
	}
	if c.Florence.Endpoint == "" {
		return fmt.Errorf("florence.endpoint is required (or set IVA_FLORENCE_ENDPOINT)")
	}
	if c.Agent.MaxPlans < 0 {
		return fmt.Errorf("agent.max_plans must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_file", "app.log")

	v.SetDefault("llm.backend", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.vision_model", "")
	v.SetDefault("llm.ollama_host", "http://localhost:11434")

	v.SetDefault("florence.endpoint", "http://localhost:8000/florence")
	v.SetDefault("florence.timeout", 60*time.Second)

	v.SetDefault("storage.path", "iva.db")
	v.SetDefault("storage.in_memory", false)
	v.SetDefault("storage.busy_timeout", 5*time.Second)

	v.SetDefault("agent.max_plans", 2)
	v.SetDefault("agent.resize_width", 512)
}
