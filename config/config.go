package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
type Config struct {
	IntegrationBaseURL string
	GeminiAPIKey       string
	DataSourcesFile    string
	Port               string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// LoadFromEnv populates AppConfig from environment variables (after
// godotenv has loaded .env in main).
func LoadFromEnv() {
	AppConfig.IntegrationBaseURL = os.Getenv("INTEGRATION_BASE_URL")
	AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	AppConfig.DataSourcesFile = os.Getenv("DATA_SOURCES_CONFIG")
	AppConfig.Port = os.Getenv("PORT")
	if AppConfig.Port == "" {
		AppConfig.Port = "3000"
	}
}

// SourceOverride overrides selected fields of a built-in data source
// descriptor. Zero values mean "keep the built-in".
type SourceOverride struct {
	Module     string `toml:"module"`
	Endpoint   string `toml:"endpoint"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

type dataSourcesFile struct {
	Sources map[string]SourceOverride `toml:"sources"`
}

// LoadSourceOverrides reads the optional TOML data-source override file.
// A missing path (or unset DATA_SOURCES_CONFIG) yields no overrides.
func LoadSourceOverrides(path string) (map[string]SourceOverride, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data sources config %s: %w", path, err)
	}
	var f dataSourcesFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse data sources config %s: %w", path, err)
	}
	return f.Sources, nil
}
