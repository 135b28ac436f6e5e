package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashell/internal/version"
	"datashell/pkg/shelltypes"
)

func TestVersionCommand_EmitsBuildRow(t *testing.T) {
	oldVersion, oldCommit, oldDate := version.Version, version.GitCommit, version.BuildDate
	defer version.SetBuildInfo(oldVersion, oldCommit, oldDate)
	version.SetBuildInfo("1.4.0-rc.2", "abc1234", "2026-03-01")

	out, err := (&VersionCommand{}).Run(context.Background(), &shelltypes.CommandArgs{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	row, ok := out[0].Value().AsRow()
	require.True(t, ok)
	v, _ := row.Get("version")
	assert.Equal(t, shelltypes.NewString("1.4.0-rc.2"), v)
	commit, _ := row.Get("commit")
	assert.Equal(t, shelltypes.NewString("abc1234"), commit)
	prerelease, _ := row.Get("prerelease")
	assert.Equal(t, shelltypes.NewBoolean(true), prerelease)
}

func TestVersionCommand_InvalidVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version.Version, version.GitCommit, version.BuildDate
	defer version.SetBuildInfo(oldVersion, oldCommit, oldDate)
	version.SetBuildInfo("garbage", "", "")

	_, err := (&VersionCommand{}).Run(context.Background(), &shelltypes.CommandArgs{})
	assert.Error(t, err)
}
