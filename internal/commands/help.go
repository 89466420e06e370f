package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) Mutates() bool     { return false }
func (c *HelpCmd) NeedsRemote() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                  List all tasks
  todo list [common flags]              List all tasks (alias: ls)
  todo pending [common flags]           List tasks not yet completed
  todo completed [common flags]         List completed tasks
  todo add [common flags] <text...>     Add a task (alias: create)
  todo done [common flags] <id>         Toggle completion (aliases: complete, toggle)
  todo rm [common flags] <id>           Delete a task (alias: delete)
  todo clear [common flags] --force     Delete all tasks
  todo push [common flags] [--list <list-name>]
                                        Copy pending tasks to Google Tasks
  todo login [common flags]
  todo logout [common flags]
  todo help
  todo version

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override task data file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
