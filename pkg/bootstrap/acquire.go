package bootstrap

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/config"
)

// SubmoduleCommand syncs all registered submodules with their remote branch.
func SubmoduleCommand(cfg *config.Config) Command {
	return Command{
		Program: cfg.Git,
		Args:    []string{"submodule", "update", "--init", "--remote", "--merge", "--recursive"},
	}
}

// CloneCommand performs a blobless clone of dep's main branch into the install path.
func CloneCommand(cfg *config.Config, dep Dependency) Command {
	return Command{
		Program: cfg.Git,
		Args: []string{
			"clone",
			dep.URL,
			"--filter=blob:none",
			"--recurse-submodules",
			"--branch=main",
			dep.Path(cfg.InstallPath),
		},
	}
}

// Acquire installs dep according to state and returns the exit code of the git call. Present
// dependencies are left alone and no command is run.
//
// A project that tracks the dependency as submodule keeps its pinning; everything else gets a
// plain clone.
func Acquire(ctx context.Context, runner Runner, cfg *config.Config, dep Dependency, state InstallState) (int, error) {
	var command Command

	switch state {
	case Present:
		return 0, nil
	case AbsentWithSubmoduleLink:
		log(ctx).Info().Msg("Pulling build system through Git submodule")
		command = SubmoduleCommand(cfg)
	case AbsentNoLink:
		log(ctx).Info().Msg("Cloning build system")
		command = CloneCommand(cfg, dep)
	default:
		return -1, eris.Errorf("unexpected install state %v", state)
	}

	return runner.Run(ctx, command)
}
