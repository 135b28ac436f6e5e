package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	shellcontext "datashell/internal/context"
)

// SetupGlobalContext installs a test-mode global context rooted at root and
// restores a fresh one when the test ends.
func SetupGlobalContext(t *testing.T, root string) *shellcontext.ShellContext {
	t.Helper()

	ctx := shellcontext.NewWithRoot(root)
	ctx.SetTestMode(true)
	ctx.Configuration().SetTestConfigDir(t.TempDir())
	ctx.Configuration().SetTestWorkingDir(t.TempDir())
	shellcontext.SetGlobalContext(ctx)

	t.Cleanup(shellcontext.ResetGlobalContext)
	return ctx
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
