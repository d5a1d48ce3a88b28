package file_test

import (
	"errors"
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/propdoc/internal/infra/persistence/file"
)

func assertNoTempFiles(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file not cleaned up: %s", e.Name())
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		data    string
		setupFS func(fs afero.Fs) error
	}{
		{
			name: "Write new artifact",
			path: "out/props.json",
			data: "{}\n",
		},
		{
			name: "Overwrite stale artifact",
			path: "props.json",
			data: `{"Bar": {"props": []}}`,
			setupFS: func(fs afero.Fs) error {
				return afero.WriteFile(fs, "props.json", []byte("stale"), 0o644)
			},
		},
		{
			name: "Create nested directories",
			path: "a/b/c/props.json",
			data: "nested",
		},
		{
			name: "Write empty file",
			path: "empty.json",
			data: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.setupFS != nil {
				require.NoError(t, tt.setupFS(fs))
			}

			err := file.WriteFileAtomic(fs, tt.path, []byte(tt.data), 0)
			require.NoError(t, err)

			content, err := afero.ReadFile(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(content))

			info, err := fs.Stat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, "-rw-r--r--", info.Mode().Perm().String())

			assertNoTempFiles(t, fs, path.Dir(tt.path))
		})
	}
}

// failingRenameFs fails every rename
type failingRenameFs struct {
	afero.Fs
}

func (f *failingRenameFs) Rename(oldname, newname string) error {
	return errors.New("rename failed")
}

func TestWriteFileAtomic_RenameFailureKeepsStaleFile(t *testing.T) {
	fs := &failingRenameFs{Fs: afero.NewMemMapFs()}
	require.NoError(t, afero.WriteFile(fs, "props.json", []byte("stale"), 0o644))

	err := file.WriteFileAtomic(fs, "props.json", []byte("fresh"), 0o644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename failed")

	content, err := afero.ReadFile(fs, "props.json")
	require.NoError(t, err)
	assert.Equal(t, "stale", string(content))
	assertNoTempFiles(t, fs, ".")
}

func TestWriteFileAtomic_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := file.WriteFileAtomic(fs, "props.json", []byte("{}"), 0o644)
	assert.Error(t, err)
}
