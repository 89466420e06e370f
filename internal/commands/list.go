package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/store"
	"todo/internal/task"
)

func init() {
	Register(&ListCmd{})
	Register(&PendingCmd{})
	Register(&CompletedCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List all tasks" }
func (c *ListCmd) Usage() string     { return "todo list" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) Mutates() bool     { return false }
func (c *ListCmd) NeedsRemote() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runList(env, args, listView{
		empty: "no tasks found",
		query: (*store.Store).All,
	}, out, errOut)
}

// PendingCmd implements the pending command.
type PendingCmd struct{}

func (c *PendingCmd) Name() string      { return "pending" }
func (c *PendingCmd) Aliases() []string { return nil }
func (c *PendingCmd) Synopsis() string  { return "List tasks not yet completed" }
func (c *PendingCmd) Usage() string     { return "todo pending" }
func (c *PendingCmd) NeedsStore() bool  { return true }
func (c *PendingCmd) Mutates() bool     { return false }
func (c *PendingCmd) NeedsRemote() bool { return false }

func (c *PendingCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PendingCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runList(env, args, listView{
		header: "Pending",
		empty:  "no pending tasks",
		query:  (*store.Store).Pending,
		count:  (*store.Store).CountPending,
	}, out, errOut)
}

// CompletedCmd implements the completed command.
type CompletedCmd struct{}

func (c *CompletedCmd) Name() string      { return "completed" }
func (c *CompletedCmd) Aliases() []string { return nil }
func (c *CompletedCmd) Synopsis() string  { return "List completed tasks" }
func (c *CompletedCmd) Usage() string     { return "todo completed" }
func (c *CompletedCmd) NeedsStore() bool  { return true }
func (c *CompletedCmd) Mutates() bool     { return false }
func (c *CompletedCmd) NeedsRemote() bool { return false }

func (c *CompletedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompletedCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runList(env, args, listView{
		header: "Completed",
		empty:  "no completed tasks",
		query:  (*store.Store).Completed,
	}, out, errOut)
}

// listView describes one of the read-only task listings.
type listView struct {
	header string // section title; empty prints tasks without a header
	empty  string // printed (unless quiet) when there is nothing to show
	query  func(*store.Store) []task.Task
	count  func(*store.Store) int // header count; nil means len of query result
}

func runList(env *Env, args []string, view listView, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := view.query(env.Store)
	if len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, view.empty)
		}
		return exitcode.Success
	}

	if view.header != "" {
		n := len(tasks)
		if view.count != nil {
			n = view.count(env.Store)
		}
		output.FormatSectionHeader(out, view.header, n)
	}
	output.FormatTasks(out, tasks)
	return exitcode.Success
}
