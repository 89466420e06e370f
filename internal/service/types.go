package service

import "errors"

// PageSize is the number of tasks per ListOpenTasks page.
const PageSize = 100

// Remote status values.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

var (
	// ErrListNotFound is returned by ResolveList when no list matches.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned by ResolveList when several lists match.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrAuth is returned when credentials are missing, expired or revoked.
	ErrAuth = errors.New("auth error")
)

// Task represents a single remote task.
type Task struct {
	ID     string
	Title  string
	Status string
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks         []Task
	NextPageToken string
}
