package main

import (
	"fmt"
	"os"
	"time"

	"cc2md/internal/record"
	"cc2md/internal/scan"
	"cc2md/internal/session"
	"cc2md/internal/tui"
)

// loadSessions reads one transcript file or every transcript under a
// directory and segments each into sessions. File modification times fill in
// the updated timestamp for sessions whose records carry none. Malformed
// lines are skipped with a warning.
func loadSessions(path string) ([]tui.Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []scan.FileInfo
	if info.IsDir() {
		files, err = scan.ScanProjects(path)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
	} else {
		files = []scan.FileInfo{{Path: path, Mtime: info.ModTime(), Size: info.Size()}}
	}

	var items []tui.Item
	for _, fi := range files {
		sessions, err := loadFile(fi.Path, fi.Mtime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  WARN: read %s: %v\n", fi.Path, err)
			continue
		}
		for _, s := range sessions {
			items = append(items, tui.Item{Session: s, Path: fi.Path})
		}
	}
	return items, nil
}

func loadFile(path string, mtime time.Time) ([]*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, skipped := record.ParseAll(string(data))
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "  WARN: %s: skipped %d malformed lines\n", path, skipped)
	}
	sessions := session.Segment(records)
	for _, s := range sessions {
		if s.LastTime.IsZero() {
			s.LastTime = mtime
		}
	}
	return sessions, nil
}
