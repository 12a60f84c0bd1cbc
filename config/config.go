package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                  string  `mapstructure:"port"`
	AIProvider            string  `mapstructure:"ai_provider"`
	AIEndpoint            string  `mapstructure:"ai_endpoint"`
	Model                 string  `mapstructure:"model"`
	OpenAIAPIKey          string  `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeysRaw      string  `mapstructure:"GEMINI_API_KEYS"`
	UploadDir             string  `mapstructure:"upload_dir"`
	MaxUploadSizeMB       int64   `mapstructure:"max_upload_size_mb"`
	RenderDPI             float64 `mapstructure:"render_dpi"`
	ArxivBaseURL          string  `mapstructure:"arxiv_base_url"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds"`
}

// GeminiAPIKeys splits the comma-separated GEMINI_API_KEYS value.
func (c *Config) GeminiAPIKeys() []string {
	keys := make([]string, 0)
	for _, key := range strings.Split(c.GeminiAPIKeysRaw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
