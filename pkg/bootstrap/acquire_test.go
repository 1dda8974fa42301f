package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquirePresentRunsNothing(t *testing.T) {
	runner := &fakeRunner{}

	code, err := Acquire(testContext(), runner, defaultConfig(), Grumm, Present)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, runner.calls)
}

func TestAcquireSubmodule(t *testing.T) {
	runner := &fakeRunner{}

	code, err := Acquire(testContext(), runner, defaultConfig(), Grumm, AbsentWithSubmoduleLink)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []Command{{
		Program: "git",
		Args:    []string{"submodule", "update", "--init", "--remote", "--merge", "--recursive"},
	}}, runner.calls)
}

func TestAcquireClone(t *testing.T) {
	runner := &fakeRunner{}
	cfg := defaultConfig()
	cfg.InstallPath = "deps"

	code, err := Acquire(testContext(), runner, cfg, Grumm, AbsentNoLink)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []Command{{
		Program: "git",
		Args: []string{
			"clone", "https://github.com/FourteenBrush/grumm.git", "--filter=blob:none",
			"--recurse-submodules", "--branch=main", Grumm.Path("deps"),
		},
	}}, runner.calls)
}

func TestAcquireSurfacesExitCode(t *testing.T) {
	for _, state := range []InstallState{AbsentWithSubmoduleLink, AbsentNoLink} {
		runner := &fakeRunner{codes: map[string]int{"git": 128}}

		code, err := Acquire(testContext(), runner, defaultConfig(), Grumm, state)
		require.NoError(t, err)
		assert.Equal(t, 128, code, state.String())
		// no retries
		assert.Len(t, runner.calls, 1)
	}
}

func TestAcquireUsesConfiguredGit(t *testing.T) {
	runner := &fakeRunner{}
	cfg := defaultConfig()
	cfg.Git = "/opt/git/bin/git"

	_, err := Acquire(testContext(), runner, cfg, Grumm, AbsentNoLink)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/git/bin/git"}, runner.programs())
}
