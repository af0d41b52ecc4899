// Package runtime provides application runtime context for Hopstack.
package runtime

import (
	"os"

	"github.com/example/hopstack/internal/chain"
	"github.com/example/hopstack/internal/config"
	"github.com/example/hopstack/internal/device"
	apperrors "github.com/example/hopstack/internal/errors"
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/logging"
	"github.com/example/hopstack/internal/model"
	"github.com/example/hopstack/internal/output"
	"github.com/example/hopstack/internal/storage"
)

// Context holds the application runtime context: one history store and one
// chain service per session, wired to storage and the optional device.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	ChainRepo   *storage.ChainRepo
	JournalRepo *storage.JournalRepo

	Store    *history.Store
	Timeline *history.Timeline
	Service  *chain.Service
	Device   *device.Client

	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("HOPSTACK_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	chainRepo := storage.NewChainRepo(db)
	journalRepo := storage.NewJournalRepo(db)

	cfg := config.Global
	storeOpts := []history.Option{
		history.WithMaxDepth(cfg.History.MaxDepth),
	}
	if cfg.History.Journal {
		storeOpts = append(storeOpts, history.WithOnChange(journalHook(journalRepo)))
	}
	store := history.New(storeOpts...)

	dev := device.New(device.Config{
		BaseURL:     cfg.Device.URL,
		Token:       cfg.Device.Token,
		Timeout:     cfg.Device.Timeout,
		RetryDelays: cfg.Device.RetryDelays,
	})

	svc := chain.NewService(chainRepo, store, dev)

	// Rehydrate the previous session's history. Callbacks are rebuilt from
	// journaled command payloads; closures never survive a reload.
	if cfg.History.Journal {
		snap, err := journalRepo.Get()
		if err != nil {
			logging.Warn("failed to read history journal", logging.KeyError, err)
		} else {
			svc.RestoreHistory(snap)
		}
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:          db,
		Formatter:   formatter,
		ChainRepo:   chainRepo,
		JournalRepo: journalRepo,
		Store:       store,
		Timeline:    history.NewTimeline(store),
		Service:     svc,
		Device:      dev,
		Debug:       opts.Debug,
	}, nil
}

// journalHook persists each metadata snapshot. Journal write failures are
// logged, not surfaced: losing durability must not fail the edit itself.
func journalHook(repo *storage.JournalRepo) func(model.HistorySnapshot) {
	return func(snap model.HistorySnapshot) {
		if err := repo.Set(snap); err != nil {
			logging.Warn("failed to journal history", logging.KeyError, err)
		}
	}
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// FormatError formats an error with an optional suggestion for display.
func FormatError(err error) string {
	return apperrors.FormatError(err)
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	return apperrors.GetSuggestion(err)
}
