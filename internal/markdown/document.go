// Package markdown converts segmented conversation sessions into Markdown
// documents.
package markdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"cc2md/internal/lang"
	"cc2md/internal/record"
	"cc2md/internal/session"
)

// sessionSeparator joins session documents: blank line, rule, blank line.
const sessionSeparator = "\n---\n\n"

// Convert parses a whole transcript and renders every session it contains,
// in discovery order. It returns the document and the number of malformed
// lines skipped.
func Convert(input string, langs *lang.Table) (string, int, error) {
	records, skipped := record.ParseAll(input)
	sessions := session.Segment(records)
	doc, err := Render(sessions, langs)
	return doc, skipped, err
}

// Render joins the given sessions into one document.
func Render(sessions []*session.Session, langs *lang.Table) (string, error) {
	parts := make([]string, 0, len(sessions))
	for _, s := range sessions {
		doc, err := RenderSession(s, langs)
		if err != nil {
			return "", err
		}
		parts = append(parts, doc)
	}
	return strings.Join(parts, sessionSeparator), nil
}

// RenderSession renders one session: title heading, then every record's
// fragment in order, then the terminal flush. A panic while processing a
// record is converted into an error carrying the record's index and JSON,
// since it indicates a processor bug rather than bad input.
func RenderSession(s *session.Session, langs *lang.Table) (out string, err error) {
	var idx int
	var cur *record.Record
	defer func() {
		if r := recover(); r != nil {
			dump, _ := json.Marshal(cur)
			err = fmt.Errorf("process record %d: %v\nrecord: %s", idx, r, dump)
		}
	}()

	lines := []string{"# " + s.Title(), ""}
	p := NewProcessor(langs)
	for i := range s.Records {
		idx, cur = i, &s.Records[i]
		lines = append(lines, p.Process(cur, s.Records, i)...)
	}
	lines = append(lines, p.Flush()...)
	return strings.Join(lines, "\n"), nil
}
