package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "todo add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) Mutates() bool     { return true }
func (c *AddCmd) NeedsRemote() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	t, err := env.Store.Add(text)
	if err != nil {
		if errors.Is(err, task.ErrValidation) {
			fmt.Fprintln(errOut, "error: task text required")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	env.Log.Debug("task added", zap.Int64("id", t.ID))
	if !env.Config.Quiet {
		fmt.Fprintf(out, "added %d\n", t.ID)
	}
	return exitcode.Success
}
