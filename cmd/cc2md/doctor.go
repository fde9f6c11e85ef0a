package main

import (
	"fmt"
	"os"

	"cc2md/internal/config"
	"cc2md/internal/scan"

	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify the projects root and show transcript stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Root ===")
			checkDir("Claude projects", cfg.ClaudeRoot)

			fmt.Println("\n=== File Scan ===")
			files, err := scan.ScanProjects(cfg.ClaudeRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
				return nil
			}
			fmt.Printf("  Transcript files: %d\n", len(files))

			var totalSize int64
			for _, f := range files {
				totalSize += f.Size
			}
			fmt.Printf("  Total size: %.1f MB\n", float64(totalSize)/1024/1024)

			fmt.Println("\n=== Sessions ===")
			items, err := loadSessions(cfg.ClaudeRoot)
			if err != nil {
				fmt.Printf("  load error: %v\n", err)
				return nil
			}
			messages := 0
			for _, it := range items {
				messages += it.Session.MessageCount
			}
			fmt.Printf("  Sessions: %d\n", len(items))
			fmt.Printf("  Messages: %d\n", messages)
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
