// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, data path, settings).
	Config *config.Config

	// Store is loaded from the data file when NeedsStore returns true, nil otherwise.
	Store *store.Store

	// Remote is the mirror backend when NeedsRemote returns true, nil otherwise.
	Remote service.Service

	// Log is never nil.
	Log *zap.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	NeedsStore() bool

	// Mutates returns true if a successful run changes the store and must be saved.
	Mutates() bool

	// NeedsRemote returns true if the command talks to the remote task service.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
