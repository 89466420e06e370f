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
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command: pending tasks are copied to a
// Google Tasks list unless an open task with the same title already exists there.
type PushCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy pending tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) Mutates() bool     { return false }
func (c *PushCmd) NeedsRemote() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = strings.TrimSpace(env.Config.RemoteList)
	}

	// Resolve list
	var list service.TaskList
	var err error
	if listName != "" {
		list, err = env.Remote.ResolveList(ctx, listName)
	} else {
		list, err = env.Remote.DefaultList(ctx)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListNotFound):
			fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
			return exitcode.UserError
		case errors.Is(err, service.ErrAmbiguousList):
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
			return exitcode.UserError
		}
		return backendFailure(errOut, err)
	}

	existing, err := openTitles(ctx, env.Remote, list.ID)
	if err != nil {
		return backendFailure(errOut, err)
	}

	pushed := 0
	for _, t := range env.Store.Pending() {
		if existing[t.Text] {
			env.Log.Debug("already on remote", zap.Int64("id", t.ID))
			continue
		}
		if err := env.Remote.CreateTask(ctx, list.ID, t.Text); err != nil {
			if pushed > 0 {
				fmt.Fprintf(errOut, "error: pushed %d task(s) before failing\n", pushed)
			}
			return backendFailure(errOut, err)
		}
		existing[t.Text] = true
		pushed++
	}

	env.Log.Debug("push finished", zap.String("list", list.Title), zap.Int("pushed", pushed))
	if !env.Config.Quiet {
		fmt.Fprintf(out, "pushed %d task(s)\n", pushed)
	}
	return exitcode.Success
}

// openTitles collects the titles of all open tasks in a remote list.
func openTitles(ctx context.Context, svc service.Service, listID string) (map[string]bool, error) {
	titles := make(map[string]bool)
	token := ""
	for {
		page, err := svc.ListOpenTasks(ctx, listID, token)
		if err != nil {
			return nil, err
		}
		for _, t := range page.Tasks {
			titles[t.Title] = true
		}
		if page.NextPageToken == "" {
			return titles, nil
		}
		token = page.NextPageToken
	}
}

// backendFailure reports a remote error with the matching exit code.
func backendFailure(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrAuth) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
