// Package service defines the backend-agnostic interface for the remote task mirror.
package service

import "context"

// Service defines the remote operations used by push.
// Commands never import the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default remote list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrListNotFound or ErrAmbiguousList when it cannot pick exactly one.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns one page of open tasks for a list, at most PageSize long.
	// An empty pageToken requests the first page; the returned page carries
	// the token for the next one, empty on the last page.
	ListOpenTasks(ctx context.Context, listID, pageToken string) (TaskPage, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}
