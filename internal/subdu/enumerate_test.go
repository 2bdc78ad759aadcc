package subdu_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/subdu/internal/subdu"
)

func TestListSubdirsInMemory(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	root := filepath.FromSlash("/data")

	require.NoError(t, fsys.MkdirAll(filepath.Join(root, "b", "nested"), 0o755))
	require.NoError(t, fsys.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	dirs, err := subdu.ListSubdirs(fsys, root)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(absRoot, "a"),
		filepath.Join(absRoot, "b"),
	}, dirs)
}

func TestListSubdirsEmptyRoot(t *testing.T) {
	t.Parallel()

	dirs, err := subdu.ListSubdirs(afero.NewOsFs(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestListSubdirsIncludesSymlinkedDirectories(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "target")
	require.NoError(t, os.Mkdir(target, 0o755))

	root := filepath.Join(base, "root")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
	writeFile(t, filepath.Join(root, "file.bin"), 1)
	symlink(t, target, filepath.Join(root, "linked"))
	symlink(t, filepath.Join(base, "missing"), filepath.Join(root, "dangling"))
	symlink(t, filepath.Join(root, "file.bin"), filepath.Join(root, "filelink"))

	dirs, err := subdu.ListSubdirs(afero.NewOsFs(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "linked"),
		filepath.Join(root, "real"),
	}, dirs)
}

func TestListSubdirsMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := subdu.ListSubdirs(afero.NewOsFs(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, subdu.ErrNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestListSubdirsRootIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.bin")
	writeFile(t, file, 1)

	_, err := subdu.ListSubdirs(afero.NewOsFs(), file)
	require.ErrorIs(t, err, subdu.ErrNotDirectory)
}

func TestListSubdirsUnreadableRoot(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	_, err := subdu.ListSubdirs(afero.NewOsFs(), root)
	require.ErrorIs(t, err, subdu.ErrPermission)
}

func TestListSubdirsEmptyPathIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := subdu.ListSubdirs(afero.NewOsFs(), "")
	require.ErrorIs(t, err, subdu.ErrNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)
}
