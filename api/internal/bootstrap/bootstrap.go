// Package bootstrap builds the long-lived collaborators shared by the
// binaries: logger, engines and the diagnostics recorder.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"proofreader/api/internal/config"
	"proofreader/api/internal/proofread"
	"proofreader/api/internal/proofread/engine"
	"proofreader/api/internal/proofread/engine/gemini"
	"proofreader/api/internal/proofread/engine/openai"
	"proofreader/api/internal/store"
)

// NewLogger returns a JSON or text slog logger at the given level name.
func NewLogger(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Engines builds every engine the configuration has credentials for. The
// returned close func releases the Gemini client.
func Engines(ctx context.Context, cfg *config.Config) (*engine.Engines, func(), error) {
	var (
		all     []engine.Engine
		closers []func() error
	)
	if cfg.HasGemini() {
		g, err := gemini.New(ctx, gemini.Options{
			APIKey:          cfg.GeminiAPIKey,
			CredentialsFile: cfg.GeminiCredentialsFile,
			Endpoint:        cfg.GeminiEndpoint,
			Model:           cfg.GeminiModel,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", proofread.ErrConfig, err)
		}
		all = append(all, g)
		closers = append(closers, g.Close)
	}
	if cfg.HasOpenAI() {
		all = append(all, openai.New(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}))
	}
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %w", proofread.ErrConfig, config.ErrMissing)
	}

	def := all[0]
	for _, e := range all {
		if e.Name() == normalizeEngine(cfg.DefaultEngine) {
			def = e
		}
	}
	more := make([]engine.Engine, 0, len(all)-1)
	for _, e := range all {
		if e != def {
			more = append(more, e)
		}
	}
	return engine.NewEngines(def, more...), closeAll, nil
}

func normalizeEngine(name string) string {
	if name = strings.ToLower(strings.TrimSpace(name)); name == "gpt" {
		return "openai"
	}
	return name
}

// Recorder opens the diagnostics store when DATABASE_URL is set. Without
// it the returned recorder and db are nil and failures are only logged.
func Recorder(ctx context.Context, cfg *config.Config, log *slog.Logger) (proofread.Recorder, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Info("diagnostics store disabled: DATABASE_URL is empty")
		return nil, nil, nil
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := store.NewFailureRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	log.Info("db connected", "dsn", store.SafeDSNSummary(cfg.DatabaseURL))
	return repo, db, nil
}
