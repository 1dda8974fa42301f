package bootstrap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/syntax"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/config"
)

// Command is a program together with its arguments.
type Command struct {
	Program string
	Args    []string
}

// ArtifactName is the file name of the compiled build file inside the output directory.
const ArtifactName = "buildfile"

// DefinePrefix is prepended to every exported config field.
const DefinePrefix = "GRUMM_"

type exportedField struct {
	name  string
	value func(*config.Config) string
}

// exportedFields lists the config fields the build file can read back through #config.
var exportedFields = []exportedField{
	{"INSTALL_PATH", func(cfg *config.Config) string { return cfg.InstallPath }},
	{"OUTPUT_PATH", func(cfg *config.Config) string { return cfg.OutputPath }},
}

// Defines returns the define tokens (NAME=value) for all exported fields that aren't empty.
func Defines(cfg *config.Config) []string {
	defines := make([]string, 0, len(exportedFields))
	for _, field := range exportedFields {
		value := field.value(cfg)
		if value == "" {
			continue
		}

		defines = append(defines, DefinePrefix+field.name+"="+value)
	}

	return defines
}

// BuildInvocation returns the toolchain call that compiles and runs the build file. args are passed
// on to the build file program.
func BuildInvocation(cfg *config.Config, args []string) Command {
	cmdArgs := []string{
		"run",
		cfg.BuildFile,
		"-file",
		"-o:none",
		"-use-separate-modules",
		"-out:" + filepath.Join(cfg.OutputPath, ArtifactName),
	}

	for _, define := range Defines(cfg) {
		cmdArgs = append(cmdArgs, "-define:"+define)
	}

	if len(args) > 0 {
		cmdArgs = append(cmdArgs, "--")
		cmdArgs = append(cmdArgs, args...)
	}

	return Command{
		Program: cfg.Toolchain,
		Args:    cmdArgs,
	}
}

// EnsureOutputDir creates the output directory and all missing parents.
func EnsureOutputDir(path string) error {
	err := os.MkdirAll(path, 0o770)
	if err != nil {
		return eris.Wrapf(err, "Failed to create output directory %s", path)
	}

	return nil
}

// FormatCommand renders the command as a shell command line.
func FormatCommand(command Command) string {
	call := new(syntax.CallExpr)
	call.Args = make([]*syntax.Word, 0, len(command.Args)+1)

	for _, arg := range append([]string{command.Program}, command.Args...) {
		call.Args = append(call.Args, &syntax.Word{
			Parts: []syntax.WordPart{quoteWordPart(arg)},
		})
	}

	buffer := strings.Builder{}
	printer := syntax.NewPrinter(syntax.Minify(true))
	err := printer.Print(&buffer, call)
	if err != nil {
		return command.Program + " " + strings.Join(command.Args, " ")
	}

	return buffer.String()
}

func quoteWordPart(value string) syntax.WordPart {
	if value != "" && !strings.ContainsAny(value, " \t\n$'\"\\`*?[]{}()<>|&;#~") {
		return &syntax.Lit{Value: value}
	}

	if !strings.Contains(value, "'") {
		return &syntax.SglQuoted{Value: value}
	}

	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`").Replace(value)
	return &syntax.DblQuoted{
		Parts: []syntax.WordPart{&syntax.Lit{Value: escaped}},
	}
}
