// Package exitcode defines the process exit codes of the todo CLI.
package exitcode

const (
	// Success means the command completed.
	Success = 0

	// UserError means bad arguments or an unknown task reference.
	UserError = 1

	// AuthError means missing credentials or an unusable configuration.
	AuthError = 2

	// BackendError means the task backend rejected or failed a request.
	BackendError = 3
)
