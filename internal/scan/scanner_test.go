package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"user"}`+"\n"), 0o644))
}

func TestScanProjects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proj-a", "session1.jsonl"))
	writeFile(t, filepath.Join(root, "proj-a", "notes.txt"))
	writeFile(t, filepath.Join(root, "proj-a", "subagents", "agent.jsonl"))
	writeFile(t, filepath.Join(root, "proj-b", "sessions-index.jsonl"))
	writeFile(t, filepath.Join(root, "proj-b", "session2.jsonl"))

	files, err := ScanProjects(root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f.Path))
		assert.Positive(t, f.Size)
		assert.False(t, f.Mtime.IsZero())
	}
	assert.ElementsMatch(t, []string{"session1.jsonl", "session2.jsonl"}, names)
}

func TestScanProjectsSortsOldestFirst(t *testing.T) {
	root := t.TempDir()
	older := filepath.Join(root, "p", "older.jsonl")
	newer := filepath.Join(root, "p", "newer.jsonl")
	writeFile(t, older)
	writeFile(t, newer)

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	files, err := ScanProjects(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "older.jsonl", filepath.Base(files[0].Path))
	assert.Equal(t, "newer.jsonl", filepath.Base(files[1].Path))
}

func TestScanProjectsMissingRoot(t *testing.T) {
	files, err := ScanProjects(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
