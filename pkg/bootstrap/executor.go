package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/rotisserie/eris"
)

// Runner executes external commands.
type Runner interface {
	// Run blocks until the command exited and returns its exit code. The error is only set if the
	// command couldn't be started at all.
	Run(ctx context.Context, command Command) (int, error)
}

// ExecRunner runs commands as child processes and passes their output through unchanged.
type ExecRunner struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner returns a runner that executes commands inside dir and connects them to the
// standard streams of this process.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *ExecRunner) Run(ctx context.Context, command Command) (int, error) {
	log(ctx).Debug().
		Bool("command", true).
		Msg(FormatCommand(command))

	cmd := exec.CommandContext(ctx, command.Program, command.Args...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return -1, eris.Wrapf(err, "Failed to run %s", command.Program)
	}

	return 0, nil
}
