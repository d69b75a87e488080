package repository

import (
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	// LoadEnv overlays process environment (and an optional .env file) onto cfg.
	LoadEnv(cfg *types.Config) error
}
