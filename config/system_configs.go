package config

import (
	"backend/model"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

// LoadConfigs reads the 'config' environment variable (optionally via .env)
// and parses it into the runtime configuration.
func LoadConfigs() (*SystemConfigs, error) {
	godotenv.Load()

	rawJson := os.Getenv("config")
	if rawJson == "" {
		return nil, fmt.Errorf("environment variable 'config' is empty or not set")
	}

	var envCfg model.EnvConfig
	err := json.Unmarshal([]byte(rawJson), &envCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if envCfg.SessionSecret == "" {
		return nil, fmt.Errorf("sessionSecret is required")
	}

	return &SystemConfigs{
		Config: &envCfg,
	}, nil
}
