package main

import (
	"fmt"
	"strings"

	"cc2md/internal/session"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file-or-dir>",
		Short: "List sessions sorted by update time",
		Long: `Lists sessions newest first. Output is TSV for fzf integration:
  sessionId, updatedAt, messages, title, file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadSessions(args[0])
			if err != nil {
				return err
			}

			sessions := make([]*session.Session, len(items))
			paths := make(map[*session.Session]string, len(items))
			for i, it := range items {
				sessions[i] = it.Session
				paths[it.Session] = it.Path
			}
			session.SortByUpdated(sessions)

			for _, s := range sessions {
				updated := "-"
				if !s.LastTime.IsZero() {
					updated = s.LastTime.Format("2006-01-02T15:04:05Z")
				}
				title := strings.ReplaceAll(s.Title(), "\t", " ")
				title = strings.ReplaceAll(title, "\n", " ")
				fmt.Printf("%s\t%s\t%d\t%s\t%s\n", s.ID, updated, s.MessageCount, title, paths[s])
			}
			return nil
		},
	}

	return cmd
}
