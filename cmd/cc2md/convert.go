package main

import (
	"fmt"

	"cc2md/internal/markdown"
	"cc2md/internal/output"
	"cc2md/internal/session"

	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var sessionID, outFile string
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "convert <file-or-dir>",
		Short: "Convert a transcript file (or a whole project directory) to Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadSessions(args[0])
			if err != nil {
				return err
			}

			var sessions []*session.Session
			for _, it := range items {
				if sessionID != "" && it.Session.ID != sessionID {
					continue
				}
				sessions = append(sessions, it.Session)
			}
			if len(sessions) == 0 {
				if sessionID != "" {
					return fmt.Errorf("session not found: %s", sessionID)
				}
				return fmt.Errorf("no sessions found in %s", args[0])
			}

			doc, err := markdown.Render(sessions, nil)
			if err != nil {
				return err
			}

			return output.Deliver(doc, output.Options{File: outFile, Clipboard: toClipboard})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Convert only this session id")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write Markdown to a file instead of stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy Markdown to the system clipboard")

	return cmd
}
