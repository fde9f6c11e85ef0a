// Package output delivers a finished Markdown document to its destination.
package output

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

type Options struct {
	File      string // write to this file when set
	Clipboard bool   // copy to the system clipboard
}

// Deliver writes the document to a file, the clipboard, or stdout. A
// clipboard failure falls back to printing the document rather than erroring.
func Deliver(doc string, opts Options) error {
	if opts.File != "" {
		if err := os.WriteFile(opts.File, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.File, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", opts.File, len(doc))
		return nil
	}
	if opts.Clipboard {
		if err := clipboard.WriteAll(doc); err != nil {
			fmt.Print(doc)
			return nil
		}
		fmt.Fprintf(os.Stderr, "Copied %d bytes to clipboard\n", len(doc))
		return nil
	}
	fmt.Print(doc)
	return nil
}
