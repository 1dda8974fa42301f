package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvocationDefaults(t *testing.T) {
	invocation := BuildInvocation(defaultConfig(), nil)

	assert.Equal(t, Command{
		Program: "odin",
		Args: []string{
			"run", "build.odin", "-file", "-o:none", "-use-separate-modules",
			"-out:" + filepath.Join("out", "buildfile"),
			"-define:GRUMM_INSTALL_PATH=dependencies",
			"-define:GRUMM_OUTPUT_PATH=out",
		},
	}, invocation)
}

func TestDefines(t *testing.T) {
	cfg := defaultConfig()
	cfg.InstallPath = "deps"
	cfg.OutputPath = "out"
	cfg.Verbose = true
	cfg.UpdateSelf = true

	assert.Equal(t, []string{"GRUMM_INSTALL_PATH=deps", "GRUMM_OUTPUT_PATH=out"}, Defines(cfg))

	cfg.OutputPath = ""
	assert.Equal(t, []string{"GRUMM_INSTALL_PATH=deps"}, Defines(cfg))
}

func TestBuildInvocationIsDeterministic(t *testing.T) {
	first := defaultConfig()
	first.InstallPath = "deps"
	second := *first

	assert.Equal(t, BuildInvocation(first, []string{"release"}), BuildInvocation(&second, []string{"release"}))
	assert.Equal(t, FormatCommand(BuildInvocation(first, nil)), FormatCommand(BuildInvocation(&second, nil)))
}

func TestBuildInvocationForwardsArgs(t *testing.T) {
	cfg := defaultConfig()
	cfg.Toolchain = "odin-dev"

	invocation := BuildInvocation(cfg, []string{"test", "-j", "4"})
	assert.Equal(t, "odin-dev", invocation.Program)
	assert.Equal(t, []string{"--", "test", "-j", "4"}, invocation.Args[len(invocation.Args)-4:])
}

func TestEnsureOutputDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, EnsureOutputDir(path))
	require.NoError(t, EnsureOutputDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"run", "build.odin", "-file"}, "odin run build.odin -file"},
		{[]string{"-define:GRUMM_INSTALL_PATH=my deps"}, "odin '-define:GRUMM_INSTALL_PATH=my deps'"},
		{[]string{"it's"}, `odin "it's"`},
		{[]string{""}, "odin ''"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCommand(Command{Program: "odin", Args: tt.args}))
	}
}
