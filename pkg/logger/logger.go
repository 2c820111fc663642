package logger

import (
	"fmt"

	"github.com/example/goldshop/pkg/config"
	"go.uber.org/zap"
)

// New builds a zap logger on top of the production preset, overriding level,
// encoding and output paths from cfg where they are set.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = level
	}

	switch cfg.Encoding {
	case "":
	case "json", "console":
		zc.Encoding = cfg.Encoding
	default:
		return nil, fmt.Errorf("unsupported log encoding %q", cfg.Encoding)
	}

	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	return zc.Build()
}
