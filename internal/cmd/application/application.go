// Package application provides the application interface for bankrot commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            list, card := app.Clients()
//	            // ... build records
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/transport"
)

// Application provides the application interface that commands need.
// The App struct from cmd/bankrot/app implements this interface.
type Application interface {
	// Clients returns the list and card service clients configured from
	// the loaded configuration. Extra options are applied after the
	// configured ones, so commands can override pacing or caching.
	Clients(opts ...transport.Option) (list, card *transport.Client)

	// HarvestOptions returns paging and target options from configuration.
	HarvestOptions() []harvest.Option

	// BuildOptions returns record assembly options from configuration.
	BuildOptions() debtors.Options

	// OutputDir is the directory generated workbooks are written to.
	OutputDir() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
