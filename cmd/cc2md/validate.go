package main

import (
	"fmt"
	"os"

	"cc2md/internal/record"

	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Strictly validate a transcript file and report every problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			issues := record.Validate(string(data))
			for _, issue := range issues {
				fmt.Println(issue)
			}
			if len(issues) == 0 {
				fmt.Fprintf(os.Stderr, "%s: OK\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "%s: %d problems\n", args[0], len(issues))
			}
			return nil
		},
	}
}
