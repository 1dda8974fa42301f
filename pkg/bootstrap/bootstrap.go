package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/config"
)

// Stage is a step of Bootstrapper.Run. Stages are passed strictly in order.
type Stage int

const (
	StageInit Stage = iota
	StageConfigResolved
	StageBuildFileValidated
	StageDependencyEnsured
	StageOutputReady
	StageInvoked
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageInit:               "init",
	StageConfigResolved:     "config resolved",
	StageBuildFileValidated: "build file validated",
	StageDependencyEnsured:  "dependency ensured",
	StageOutputReady:        "output ready",
	StageInvoked:            "invoked",
	StageDone:               "done",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	name, ok := stageNames[s]
	if !ok {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return name
}

// SelfUpdater replaces the launcher with its latest version.
type SelfUpdater interface {
	UpdateSelf(ctx context.Context, cfg *config.Config) error
}

// ErrSelfUpdateUnsupported is returned by the default SelfUpdater.
var ErrSelfUpdateUnsupported = eris.New("Self-update is not supported by this launcher yet")

type unsupportedSelfUpdater struct{}

func (unsupportedSelfUpdater) UpdateSelf(context.Context, *config.Config) error {
	return ErrSelfUpdateUnsupported
}

// Bootstrapper ensures the build system is installed and then runs the build file.
type Bootstrapper struct {
	Config     *config.Config
	Dependency Dependency
	// WorkDir is the project root. Relative paths in Config, .gitmodules and all commands are
	// resolved against it.
	WorkDir string
	// Args are forwarded to the build file program.
	Args        []string
	Runner      Runner
	SelfUpdater SelfUpdater

	stage Stage
}

// Stage returns the stage the last Run call reached.
func (b *Bootstrapper) Stage() Stage {
	return b.stage
}

func (b *Bootstrapper) advance(ctx context.Context, stage Stage) {
	b.stage = stage
	log(ctx).Debug().Str("stage", stage.String()).Msgf("Reached stage %s", stage)
}

// Run executes all stages. Side effects of completed stages are kept if a later stage fails.
func (b *Bootstrapper) Run(ctx context.Context) (err error) {
	b.stage = StageInit
	defer func() {
		if err != nil {
			log(ctx).Debug().Str("stage", b.stage.String()).Msg("Bootstrap failed")
			b.stage = StageFailed
		}
	}()

	if b.Config == nil {
		return eris.New("no configuration passed")
	}

	if err = b.Config.Validate(); err != nil {
		return err
	}
	b.advance(ctx, StageConfigResolved)

	if b.Config.UpdateSelf {
		updater := b.SelfUpdater
		if updater == nil {
			updater = unsupportedSelfUpdater{}
		}

		if err = updater.UpdateSelf(ctx, b.Config); err != nil {
			return err
		}

		b.advance(ctx, StageDone)
		return nil
	}

	if err = b.checkBuildFile(); err != nil {
		return err
	}
	b.advance(ctx, StageBuildFileValidated)

	if err = b.ensureDependency(ctx); err != nil {
		return err
	}
	b.advance(ctx, StageDependencyEnsured)

	if err = EnsureOutputDir(resolvePath(b.WorkDir, b.Config.OutputPath)); err != nil {
		return err
	}
	b.advance(ctx, StageOutputReady)

	invocation := BuildInvocation(b.Config, b.Args)
	code, err := b.Runner.Run(ctx, invocation)
	if err != nil {
		return err
	}
	b.advance(ctx, StageInvoked)

	if code != 0 {
		return CommandFailed{Step: "Build", ExitCode: code}
	}

	b.advance(ctx, StageDone)
	return nil
}

func (b *Bootstrapper) checkBuildFile() error {
	path := resolvePath(b.WorkDir, b.Config.BuildFile)
	info, err := os.Stat(path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return MissingBuildFile{Path: b.Config.BuildFile}
		}
		return eris.Wrapf(err, "Failed to check build file %s", path)
	}

	if info.IsDir() {
		return MissingBuildFile{Path: b.Config.BuildFile}
	}

	return nil
}

func (b *Bootstrapper) ensureDependency(ctx context.Context) error {
	state, err := Probe(ctx, b.WorkDir, b.Config.InstallPath, b.Dependency)
	if err != nil {
		return err
	}

	code, err := Acquire(ctx, b.Runner, b.Config, b.Dependency, state)
	if err != nil {
		return err
	}

	if code != 0 {
		return CommandFailed{Step: "Bootstrapping the build system", ExitCode: code}
	}

	return nil
}
