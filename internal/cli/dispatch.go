// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logger"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
)

// ServiceFactory creates a Service from config.
// Used to inject the remote backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list everything
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	dataFile  string
	quiet     bool
	debug     bool
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	fs.StringVar(&common.configDir, "config", "", "")
	fs.StringVar(&common.dataFile, "file", "", "")
	fs.BoolVar(&common.quiet, "quiet", false, "")
	fs.BoolVar(&common.debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leftover leading dash means a flag after a positional arg terminator
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	applyFlags(fs, cfg, common)

	log := logger.New(cfg.Debug, errOut)
	defer log.Sync()
	log.Debug("dispatch",
		zap.String("command", cmd.Name()),
		zap.String("config_dir", cfg.Dir),
		zap.String("data_file", cfg.DataPath()),
	)
	for _, key := range cfg.Undecoded {
		log.Warn("unknown config key", zap.String("key", key), zap.String("file", cfg.ConfigPath()))
	}

	env := &commands.Env{Config: cfg, Log: log}

	if cmd.NeedsStore() {
		st := store.New(store.WithLogger(log))
		if err := st.Load(cfg.DataPath()); err != nil {
			return storageFailure(errOut, cfg.DataPath(), err)
		}
		env.Store = st
	}

	if cmd.NeedsRemote() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no remote backend configured")
			return exitcode.BackendError
		}
		svc, err := d.factory(ctx, cfg)
		if err != nil {
			if errors.Is(err, service.ErrAuth) {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		env.Remote = svc
	}

	code := cmd.Run(ctx, env, positionalArgs, out, errOut)

	// Write-through: persist only what a successful mutating command changed
	if code == exitcode.Success && cmd.Mutates() {
		if err := env.Store.Save(cfg.DataPath()); err != nil {
			return storageFailure(errOut, cfg.DataPath(), err)
		}
	}
	return code
}

// applyFlags lets explicitly set flags override config file and environment values.
func applyFlags(fs *flag.FlagSet, cfg *config.Config, common commonFlags) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.DataFile = common.dataFile
		case "quiet":
			cfg.Quiet = common.quiet
		case "debug":
			cfg.Debug = common.debug
		}
	})
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
	}
	return errStr
}

// storageFailure reports a load/save error and returns the storage exit code.
func storageFailure(errOut io.Writer, path string, err error) int {
	if errors.Is(err, task.ErrDeserialization) {
		fmt.Fprintf(errOut, "error: invalid data file %s: %v\n", path, err)
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.StorageError
}
