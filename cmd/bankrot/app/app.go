// Package app provides the application context and dependency management
// for the bankrot CLI. It centralizes configuration, logging and the
// upstream service clients, and owns their lifecycle.
package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/errors"
)

// App represents the bankrot application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Clients created so far, closed on shutdown
	mu      sync.Mutex
	clients []*transport.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the directory generated workbooks are written to.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// Clients creates the list and card service clients. The list client is
// paced and uncached; the card client is paced and caches bodies, since
// sub-resources are often read twice for one debtor.
func (a *App) Clients(opts ...transport.Option) (list, card *transport.Client) {
	c := a.config
	retry := transport.WithRetryPolicy(transport.RetryPolicy{
		MaxAttempts:    c.MaxAttempts,
		InitialBackoff: c.InitialBackoff,
		MaxBackoff:     c.MaxBackoff,
		Factor:         c.BackoffFactor,
	})

	listOpts := []transport.Option{
		transport.WithHeaders(merged(fedresurs.DefaultListHeaders(), c.ListHeaders)),
		transport.WithDelay(c.RequestDelay),
		transport.WithTimeout(c.HTTPTimeout),
		retry,
	}
	cardOpts := []transport.Option{
		transport.WithHeaders(merged(fedresurs.DefaultCardHeaders(), c.CardHeaders)),
		transport.WithDelay(c.RequestDelay),
		transport.WithTimeout(c.HTTPTimeout),
		transport.WithCache(c.CacheTTL),
		retry,
	}

	list = transport.New(c.ListBaseURL, append(listOpts, opts...)...)
	card = transport.New(c.CardBaseURL, append(cardOpts, opts...)...)

	a.mu.Lock()
	a.clients = append(a.clients, list, card)
	a.mu.Unlock()
	return list, card
}

// HarvestOptions returns paging and target options from configuration.
func (a *App) HarvestOptions() []harvest.Option {
	return []harvest.Option{
		harvest.WithLegalTarget(a.config.LegalTarget),
		harvest.WithPersonTarget(a.config.PersonTarget),
		harvest.WithPageSize(a.config.PageSize),
	}
}

// BuildOptions returns record assembly options from configuration.
func (a *App) BuildOptions() debtors.Options {
	return debtors.Options{
		ActiveCaseDefault:  a.config.ActiveCaseDefault,
		TradesHTMLFallback: a.config.TradesHTMLFallback,
	}
}

// Shutdown releases the clients created by the app.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	clients := a.clients
	a.clients = nil
	a.mu.Unlock()

	for _, c := range clients {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Close()
	}
	return nil
}

// merged layers configured headers over the service defaults. Config keys
// arrive lower-cased, so both layers are canonicalized.
func merged(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for _, layer := range []map[string]string{base, over} {
		for k, v := range layer {
			out[http.CanonicalHeaderKey(k)] = v
		}
	}
	return out
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
