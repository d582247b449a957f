package store

import (
	"log/slog"

	"github.com/lenderdesk/guarantor/internal/config"
)

// New builds the Client selected by configuration and wraps it in the query
// cache. Callers never branch on the backend mode themselves.
func New(cfg *config.Config) Client {
	var inner Client

	switch cfg.Backend.Mode {
	case config.ModeRemote:
		slog.Info("using remote backend", "base_url", cfg.Backend.BaseURL)
		inner = NewRemote(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout, cfg.Backend.RetryCount)
	default:
		slog.Info("using fixture backend")
		inner = NewFixture(
			WithSubmittedBy(cfg.Session.SubmittedBy),
			WithProgressTick(cfg.Upload.ProgressTick),
		)
	}

	return NewCached(inner)
}
