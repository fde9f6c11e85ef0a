package main

import (
	"fmt"
	"os"
	"sort"

	"cc2md/internal/config"
	"cc2md/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Interactively browse sessions and copy one as Markdown",
		Long:  `Opens a TUI with a filterable session list and a live Markdown preview. Enter copies the selected session's Markdown to the clipboard. Defaults to the configured Claude projects root.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) == 1 {
				root = args[0]
			} else {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				root = cfg.ClaudeRoot
			}

			items, err := loadSessions(root)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no sessions found in %s", root)
			}
			sort.SliceStable(items, func(i, j int) bool {
				return items[i].Session.LastTime.After(items[j].Session.LastTime)
			})

			// TSV fallback when stdout is a pipe
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				for _, it := range items {
					fmt.Printf("%s\t%s\t%s\n", it.Session.ID, it.Session.Title(), it.Path)
				}
				return nil
			}

			return tui.Run(items)
		},
	}

	return cmd
}
