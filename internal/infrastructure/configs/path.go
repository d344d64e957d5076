package configs

import (
	"os"

	"github.com/hilthontt/chatrelay/internal/infrastructure/env"
)

var configCandidates = []string{
	"./config.yaml",
	"./config.yml",
	"../../config.yaml", // keep for local dev
	"/etc/chatrelay/config.yaml",
	"/app/config.yaml", // common in Docker
}

// DetermineConfigPath resolves the config file from the --config flag value,
// then CHATRELAY_CONFIG, then the first existing candidate. An empty result
// means the service runs on defaults and env overrides alone.
func DetermineConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if configPath := env.GetString("CHATRELAY_CONFIG", ""); configPath != "" {
		return configPath
	}

	for _, p := range configCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
