package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/bootstrap"
	"github.com/FourteenBrush/grumm-bootstrap/pkg/config"
)

var (
	getwd     = os.Getwd
	newRunner = func(dir string) bootstrap.Runner {
		return bootstrap.NewExecRunner(dir)
	}
	logOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "grumm-bootstrap [flags] [-- build file args...]",
	Short: "Bootstraps the grumm build system and runs build.odin",
	Long: `Makes sure the grumm build system is available in the install path, either by
updating the git submodule that tracks it or by cloning it, and then compiles and
runs the build file with the Odin toolchain.

Arguments after -- are passed on to the build file.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		ctx := bootstrap.WithLogger(cmd.Context(), &logger)

		b := bootstrap.Bootstrapper{
			Config:     cfg,
			Dependency: bootstrap.Grumm,
			WorkDir:    wd,
			Args:       args,
			Runner:     newRunner(wd),
		}
		return b.Run(ctx)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return config.UsageError{Msg: err.Error()}
	})
}

func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	wd, err := getwd()
	if err != nil {
		return "", nil, eris.Wrap(err, "Failed to retrieve the current working directory")
	}

	cfg, err := config.Load(cmd.Flags(), filepath.Join(wd, config.FileName))
	if err != nil {
		return "", nil, err
	}

	return wd, cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	writer := NewConsoleWriter(logOutput)
	writer.Verbose = cfg.Verbose

	return zerolog.New(writer).Level(cfg.LogLevel())
}

// Execute runs the root command and returns the exit code for the process.
func Execute() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		logger := zerolog.New(NewConsoleWriter(logOutput))
		logger.Error().Err(err).Msg("Bootstrap failed")

		var usage config.UsageError
		if errors.As(err, &usage) {
			logger.Info().Msg("Run with --help for usage information")
		}
	}

	return bootstrap.ExitCode(err)
}
