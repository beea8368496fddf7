package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesIntermediates(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b", "device.key")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestEnsureParentDir_ExistingDir(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "device.key")

	_, err := EnsureParentDir(target)
	require.NoError(t, err)

	// идемпотентно
	_, err = EnsureParentDir(target)
	require.NoError(t, err)
}
