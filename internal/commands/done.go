package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete", "toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *DoneCmd) Usage() string     { return "todo done <id>" }
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) Mutates() bool     { return true }
func (c *DoneCmd) NeedsRemote() bool { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	completed, err := env.Store.ToggleComplete(id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	env.Log.Debug("task toggled", zap.Int64("id", id), zap.Bool("completed", completed))
	if !env.Config.Quiet {
		state := "reopened"
		if completed {
			state = "completed"
		}
		fmt.Fprintf(out, "task %d %s\n", id, state)
	}
	return exitcode.Success
}
