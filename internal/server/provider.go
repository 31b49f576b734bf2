package server

import (
	"log/slog"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/providers"
	"sportkalender-service/internal/providers/fixture"
	"sportkalender-service/internal/providers/openligadb"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch cfg.Provider {
	case config.ProviderOpenLigaDB, "":
		return openligadb.NewClient(openligadb.Config{
			BaseURL: cfg.Upstream.BaseURL,
			Timeout: cfg.Upstream.Timeout,
		})
	case config.ProviderFixture:
		return fixture.New()
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New()
	}
}
