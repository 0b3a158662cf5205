package logfs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/logfs"
	"github.com/Egor213/RBACPanel/internal/repo/repoerrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestFileRepo_ListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "backend", "app.log"), "x")
	writeFile(t, filepath.Join(root, "backend", "api", "access.log"), "x")
	writeFile(t, filepath.Join(root, "backend", "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "frontend", "user_actions", "actions.log"), "x")

	files := logfs.NewFileRepo(root).ListFiles(context.Background())

	assert.ElementsMatch(t, []string{"app.log", "api/access.log"}, files[domain.CategoryBackend])
	assert.Equal(t, []string{"user_actions/actions.log"}, files[domain.CategoryFrontend])
	assert.NotNil(t, files[domain.CategorySystem])
	assert.Empty(t, files[domain.CategorySystem])
}

func TestFileRepo_ListFiles_MissingRoot(t *testing.T) {
	files := logfs.NewFileRepo(filepath.Join(t.TempDir(), "nope")).ListFiles(context.Background())

	for _, c := range domain.Categories {
		assert.Empty(t, files[c])
	}
}

func TestFileRepo_ReadFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "system", "sys.log"),
		`{"timestamp":"2024-05-01T10:00:00","level":"INFO","message":"one"}`,
		"",
		"garbage line",
		"2024-05-01 10:00:01 - sys - ERROR - disk.py:check:3 - two",
	)

	entries, err := logfs.NewFileRepo(root).ReadFile(context.Background(), "SYSTEM", "sys.log", 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, domain.CategorySystem, entries[0].Category)
	assert.Equal(t, "sys.log", entries[0].LogFile)
	assert.Equal(t, `{"timestamp":"2024-05-01T10:00:00","level":"INFO","message":"one"}`, entries[0].RawLine)
	assert.Equal(t, "two", entries[1].Message)
}

func TestFileRepo_ReadFile_TailCap(t *testing.T) {
	root := t.TempDir()
	lines := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"INFO","message":"m%d"}`, i))
	}
	writeFile(t, filepath.Join(root, "backend", "big.log"), lines...)

	entries, err := logfs.NewFileRepo(root).ReadFile(context.Background(), domain.CategoryBackend, "big.log", 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, "m15", entries[0].Message)
	assert.Equal(t, "m24", entries[9].Message)
}

func TestFileRepo_ReadFile_Missing(t *testing.T) {
	repo := logfs.NewFileRepo(t.TempDir())

	entries, err := repo.ReadFile(context.Background(), domain.CategoryBackend, "none.log", 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.ReadFile(context.Background(), "mobile", "none.log", 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileRepo_ReadFile_RejectsTraversal(t *testing.T) {
	_, err := logfs.NewFileRepo(t.TempDir()).ReadFile(context.Background(), domain.CategoryBackend, "../../etc/passwd.log", 10)
	assert.ErrorIs(t, err, repoerrs.ErrInvalidPath)
}

func TestFileRepo_ReadFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := logfs.NewFileRepo(t.TempDir()).ReadFile(ctx, domain.CategoryBackend, "a.log", 10)
	assert.ErrorIs(t, err, context.Canceled)
}
