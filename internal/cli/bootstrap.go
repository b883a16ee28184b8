package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/config"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/service"
	"github.com/spec-kit/mood-journal/internal/summarizer"
	"github.com/spec-kit/mood-journal/internal/worker"
)

// FromConfig opens the configured substrate and wires the services over it.
func FromConfig(cfg *config.Config, logger *zap.Logger) Bootstrap {
	return func(ctx context.Context) (*service.Container, func() error, error) {
		store, err := persistence.Open(ctx, *cfg, logger)
		if err != nil {
			return nil, nil, err
		}

		trend, err := summarizer.New(ctx, cfg.Summarizer)
		if err != nil && !errors.Is(err, summarizer.ErrNotConfigured) {
			_ = store.Close()
			return nil, nil, err
		}

		container, err := service.NewContainer(*cfg, store, trend, logger)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		worker.StartActivityWorker(container.Activity)
		return container, store.Close, nil
	}
}
