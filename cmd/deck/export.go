package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/config"
	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/service"
	"github.com/spf13/viper"
)

// sinkFor builds the export destination named by target.
func sinkFor(ctx context.Context, target string, logger *slog.Logger) (service.Sink, error) {
	switch target {
	case "file":
		return export.NewFileSink(config.ExpandPath(viper.GetString("export.dir")), logger), nil
	case "s3":
		cfg, err := config.LoadS3Config()
		if err != nil {
			return nil, fmt.Errorf("failed to load s3 config: %w", err)
		}
		return export.NewS3Sink(ctx, *cfg, logger)
	case "sheets":
		cfg, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load sheets config: %w", err)
		}
		return export.NewSheetsSink(ctx, *cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown export target %q (want file, s3 or sheets)", common.ErrInvalidInput, target)
	}
}
