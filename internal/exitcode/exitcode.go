// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown id).
	UserError = 1

	// AuthError indicates an auth/config error for the Google Tasks mirror.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3

	// StorageError indicates the data file could not be read, parsed or written.
	StorageError = 4
)
