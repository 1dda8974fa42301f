package bootstrap

import (
	"errors"
	"fmt"
)

// MissingBuildFile is returned if the configured build file doesn't exist.
type MissingBuildFile struct {
	Path string
}

var _ error = (*MissingBuildFile)(nil)

func (e MissingBuildFile) Error() string {
	return fmt.Sprintf("Cannot find build file %s", e.Path)
}

// MetadataReadError is returned if the submodule metadata exists but can't be parsed.
type MetadataReadError struct {
	Path string
	Err  error
}

var _ error = (*MetadataReadError)(nil)

func (e MetadataReadError) Error() string {
	return fmt.Sprintf("Failed to read submodule metadata from %s: %s", e.Path, e.Err.Error())
}

func (e MetadataReadError) Unwrap() error {
	return e.Err
}

// CommandFailed is returned if an external command exited with a non-zero status.
type CommandFailed struct {
	Step     string
	ExitCode int
}

var _ error = (*CommandFailed)(nil)

func (e CommandFailed) Error() string {
	return fmt.Sprintf("%s exited with exit code %d", e.Step, e.ExitCode)
}

// ExitCode maps the result of Bootstrapper.Run to a process exit status. Failed commands pass
// their own exit code through, everything else exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var failed CommandFailed
	if errors.As(err, &failed) && failed.ExitCode > 0 {
		return failed.ExitCode
	}

	return 1
}
