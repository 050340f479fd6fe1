package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/bankrot/cmd/bankrot/cmd/harvest"
	"github.com/agentstation/bankrot/cmd/bankrot/cmd/inspect"
	"github.com/agentstation/bankrot/cmd/bankrot/cmd/version"
	"github.com/agentstation/bankrot/internal/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// NewHarvestCommand creates the harvest command with app dependencies.
func (a *App) NewHarvestCommand() *cobra.Command {
	return harvest.NewCommand(a)
}

// NewInspectCommand creates the inspect command with app dependencies.
func (a *App) NewInspectCommand() *cobra.Command {
	return inspect.NewCommand(a)
}

// NewVersionCommand creates the version command with app dependencies.
func (a *App) NewVersionCommand() *cobra.Command {
	return version.NewCommand(a)
}
