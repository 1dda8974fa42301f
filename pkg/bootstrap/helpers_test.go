package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/config"
)

const grummModules = `[submodule "dependencies/grumm"]
	path = dependencies/grumm
	url = https://github.com/FourteenBrush/grumm.git
`

func testContext() context.Context {
	logger := zerolog.Nop()
	return WithLogger(context.Background(), &logger)
}

func defaultConfig() *config.Config {
	cfg := config.Defaults()
	return &cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fakeRunner records every command and answers with the exit code configured for its program.
type fakeRunner struct {
	calls []Command
	codes map[string]int
	err   error
}

func (r *fakeRunner) Run(ctx context.Context, command Command) (int, error) {
	r.calls = append(r.calls, command)
	if r.err != nil {
		return -1, r.err
	}
	return r.codes[command.Program], nil
}

func (r *fakeRunner) programs() []string {
	result := make([]string, len(r.calls))
	for idx, call := range r.calls {
		result[idx] = call.Program
	}
	return result
}
