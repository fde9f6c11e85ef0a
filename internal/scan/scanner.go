package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one transcript file found under a projects root.
type FileInfo struct {
	Path  string
	Mtime time.Time
	Size  int64
}

// ScanProjects walks a Claude projects root and returns every transcript
// file, oldest first. Unreadable directories are skipped, as are subagent
// transcripts and index files.
func ScanProjects(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if filepath.Base(path) == "subagents" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}
		if strings.Contains(filepath.Base(path), "sessions-index") {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Mtime.Before(files[j].Mtime) })
	return files, nil
}
