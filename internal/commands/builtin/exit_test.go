package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashell/internal/commands"
	"datashell/internal/testutils"
	"datashell/pkg/shelltypes"
)

func TestExitCommand_PopsFrame(t *testing.T) {
	env := testutils.NewFakeEnvironment("/work")
	env.Push(&testutils.FakeFrame{FrameID: "a", FrameName: "a.json", FramePath: "/work"})
	cmd := &ExitCommand{}

	out, err := cmd.Run(context.Background(), &shelltypes.CommandArgs{Env: env})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 1, env.Depth())
}

func TestExitCommand_AtRootExitsShell(t *testing.T) {
	cmd := &ExitCommand{}

	_, err := cmd.Run(context.Background(), &shelltypes.CommandArgs{Env: testutils.NewFakeEnvironment("/")})
	assert.ErrorIs(t, err, commands.ErrExitShell)

	_, err = cmd.Run(context.Background(), &shelltypes.CommandArgs{})
	assert.ErrorIs(t, err, commands.ErrExitShell)
}

func TestExitCommand_Registered(t *testing.T) {
	cmd, ok := commands.GlobalRegistry.Get("exit")
	require.True(t, ok)
	assert.Equal(t, "\\exit", cmd.Usage())
}
