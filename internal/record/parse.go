package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseLine parses one line of a transcript file.
func ParseLine(line []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ParseAll parses a whole transcript, skipping blank and malformed lines.
// It returns the records in file order and the number of lines skipped.
func ParseAll(input string) ([]Record, int) {
	var records []Record
	skipped := 0
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine([]byte(line))
		if err != nil {
			skipped++
			continue
		}
		records = append(records, *rec)
	}
	return records, skipped
}

// Issue is one problem found by Validate, tied to a 1-based line number.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

var knownTypes = map[string]bool{
	TypeUser:      true,
	TypeAssistant: true,
	TypeSummary:   true,
	TypeSystem:    true,
}

// Validate runs the strict validation pass: every offending line is reported
// individually, and nothing is fatal.
func Validate(input string) []Issue {
	var issues []Issue
	for n, line := range strings.Split(input, "\n") {
		lineNo := n + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine([]byte(line))
		if err != nil {
			issues = append(issues, Issue{lineNo, "invalid JSON: " + err.Error()})
			continue
		}
		switch {
		case rec.Type == "":
			issues = append(issues, Issue{lineNo, "missing type"})
		case !knownTypes[rec.Type]:
			issues = append(issues, Issue{lineNo, fmt.Sprintf("unknown type %q", rec.Type)})
		case rec.Type != TypeSummary && rec.SessionID == "":
			issues = append(issues, Issue{lineNo, fmt.Sprintf("%s record missing sessionId", rec.Type)})
		}
	}
	return issues
}
