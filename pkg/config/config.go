package config

import (
	"fmt"
	"path/filepath"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// BuildFileExt is the only extension the Odin toolchain accepts for a standalone build file.
const BuildFileExt = ".odin"

// FileName is the optional config file that is read from the working directory.
const FileName = "grumm.toml"

// EnvPrefix is prepended to the env name of every option (i.e. GRUMM_INSTALL_PATH).
const EnvPrefix = "GRUMM"

// Config describes all configuration options.
//
// The default tags are the only place where defaults are defined. The install and output defaults
// have to stay in sync with the defaults the grumm build system assumes when the build file is
// compiled without defines.
type Config struct {
	BuildFile   string `default:"build.odin" env:"BUILD_FILE" toml:"build_file" yaml:"build_file" usage:"Build file to run"`
	InstallPath string `default:"dependencies" env:"INSTALL_PATH" toml:"install_path" yaml:"install_path" usage:"Directory the build system is installed into"`
	OutputPath  string `default:"out" env:"OUTPUT_PATH" toml:"output_path" yaml:"output_path" usage:"Directory for build artifacts"`
	UpdateSelf  bool   `default:"false" env:"UPDATE_SELF" toml:"update_self" yaml:"update_self" usage:"Update this launcher instead of running the build"`
	Verbose     bool   `default:"false" env:"VERBOSE" toml:"verbose" yaml:"verbose" usage:"Print additional diagnostics"`
	Toolchain   string `default:"odin" env:"TOOLCHAIN" toml:"toolchain" yaml:"toolchain" usage:"Odin compiler executable"`
	Git         string `default:"git" env:"GIT" toml:"git" yaml:"git" usage:"Git executable"`
}

// UsageError is returned for invalid invocation arguments or option values.
type UsageError struct {
	Msg string
}

var _ error = (*UsageError)(nil)

func (e UsageError) Error() string {
	return e.Msg
}

// WrongExtension is returned if the build file can't be run by the toolchain.
type WrongExtension struct {
	Path string
}

var _ error = (*WrongExtension)(nil)

func (e WrongExtension) Error() string {
	return fmt.Sprintf("Build file %s must have the extension %s", e.Path, BuildFileExt)
}

func newLoader(cfg *Config, files []string) *aconfig.Loader {
	return aconfig.LoaderFor(cfg, aconfig.Config{
		SkipFlags:          true,
		EnvPrefix:          EnvPrefix,
		AllowUnknownEnvs:   true,
		AllowUnknownFields: true,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Defaults returns a Config that only contains the default values.
func Defaults() Config {
	cfg := Config{}
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFiles: true,
		SkipEnv:   true,
		SkipFlags: true,
	})

	if err := loader.Load(); err != nil {
		// the defaults are static; failing here means a broken struct tag
		panic(err)
	}

	return cfg
}

// RegisterFlags declares all command line options on the given flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Defaults()

	flags.StringP("build-file", "b", defaults.BuildFile, "build file to run")
	flags.String("install-path", defaults.InstallPath, "directory the build system is installed into")
	flags.String("output-path", defaults.OutputPath, "directory for build artifacts")
	flags.Bool("update-self", defaults.UpdateSelf, "update this launcher instead of running the build")
	flags.BoolP("verbose", "v", defaults.Verbose, "print additional diagnostics")
	flags.String("toolchain", defaults.Toolchain, "Odin compiler executable")
	flags.String("git", defaults.Git, "git executable")
}

// Load resolves the configuration from the defaults, the given config files, GRUMM_* env vars and
// finally the flags that were explicitly passed.
func Load(flags *pflag.FlagSet, files ...string) (*Config, error) {
	cfg := Config{}
	if err := newLoader(&cfg, files).Load(); err != nil {
		return nil, UsageError{Msg: eris.Wrap(err, "Failed to load configuration").Error()}
	}

	if err := applyFlags(&cfg, flags); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		switch f.Name {
		case "build-file":
			cfg.BuildFile = f.Value.String()
		case "install-path":
			cfg.InstallPath = f.Value.String()
		case "output-path":
			cfg.OutputPath = f.Value.String()
		case "toolchain":
			cfg.Toolchain = f.Value.String()
		case "git":
			cfg.Git = f.Value.String()
		case "update-self":
			cfg.UpdateSelf, err = flags.GetBool(f.Name)
		case "verbose":
			cfg.Verbose, err = flags.GetBool(f.Name)
		}
	})

	if err != nil {
		return UsageError{Msg: err.Error()}
	}
	return nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	if cfg.BuildFile == "" {
		return UsageError{Msg: "Invalid value for build-file: must not be empty"}
	}

	if filepath.Ext(cfg.BuildFile) != BuildFileExt {
		return WrongExtension{Path: cfg.BuildFile}
	}

	if cfg.InstallPath == "" {
		return UsageError{Msg: "Invalid value for install-path: must not be empty"}
	}

	if cfg.OutputPath == "" {
		return UsageError{Msg: "Invalid value for output-path: must not be empty"}
	}

	if cfg.Toolchain == "" || cfg.Git == "" {
		return UsageError{Msg: "The toolchain and git executables must not be empty"}
	}

	return nil
}

// LogLevel derives the zerolog level from the Verbose flag.
func (cfg *Config) LogLevel() zerolog.Level {
	if cfg.Verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
