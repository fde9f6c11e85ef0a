package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"cc2md/internal/record"
)

// Session is a logically contiguous conversation: records sharing a session
// id and not separated by a summary boundary.
type Session struct {
	ID               string
	Records          []record.Record
	Summary          string // explicit summary from a matching summary record
	GeneratedSummary string // derived from the first substantive user message
	FirstTime        time.Time
	LastTime         time.Time
	MessageCount     int // user + assistant records only
}

// Title returns the heading for the session's document.
func (s *Session) Title() string {
	if s.Summary != "" {
		return s.Summary
	}
	if s.GeneratedSummary != "" {
		return s.GeneratedSummary
	}
	return "Untitled"
}

// Segment groups a flat record sequence into sessions, splitting each
// session-id bucket at summary boundaries. Sessions are returned in
// discovery order; sessions with no user or assistant messages are dropped.
func Segment(records []record.Record) []*Session {
	// pass 1: leafUuid -> summary text
	summaries := make(map[string]string)
	for _, r := range records {
		if r.Type == record.TypeSummary && r.LeafUUID != "" && r.Summary != "" {
			summaries[r.LeafUUID] = r.Summary
		}
	}

	// pass 2: bucket by session id, preserving record and discovery order.
	// Records without a session id are orphaned system records; drop them.
	var order []string
	buckets := make(map[string][]record.Record)
	for _, r := range records {
		if r.Type == record.TypeSummary || r.SessionID == "" {
			continue
		}
		if _, seen := buckets[r.SessionID]; !seen {
			order = append(order, r.SessionID)
		}
		buckets[r.SessionID] = append(buckets[r.SessionID], r)
	}

	var sessions []*Session
	for _, id := range order {
		recs := buckets[id]

		var bounds []int
		for i, r := range recs {
			if r.UUID == "" {
				continue
			}
			if _, ok := summaries[r.UUID]; ok {
				bounds = append(bounds, i)
			}
		}

		chunk := 0
		start := 0
		emit := func(part []record.Record) {
			chunkID := id
			if chunk > 0 {
				chunkID = fmt.Sprintf("%s_%d", id, chunk)
			}
			chunk++
			if len(part) == 0 {
				return
			}
			s := build(chunkID, part, summaries)
			if s.MessageCount > 0 {
				sessions = append(sessions, s)
			}
		}

		for _, b := range bounds {
			emit(recs[start : b+1])
			start = b + 1
		}
		emit(recs[start:])
	}
	return sessions
}

func build(id string, recs []record.Record, summaries map[string]string) *Session {
	s := &Session{ID: id, Records: recs}
	for _, r := range recs {
		if r.UUID != "" {
			if text, ok := summaries[r.UUID]; ok {
				s.Summary = text
			}
		}
		if r.Type == record.TypeUser || r.Type == record.TypeAssistant {
			s.MessageCount++
		}
		// first/last seen, not min/max: transcript records are written in
		// chronological order
		if IsValidTimestamp(r.Timestamp) {
			ts := ParseTimestamp(r.Timestamp)
			if ts.IsZero() {
				continue
			}
			if s.FirstTime.IsZero() {
				s.FirstTime = ts
			}
			s.LastTime = ts
		}
	}
	s.GeneratedSummary = generateSummary(recs)
	return s
}

// generateSummary derives a title from the first user message that carries
// real text: not a command, not the interruption marker, not empty command
// output.
func generateSummary(recs []record.Record) string {
	for _, r := range recs {
		if r.Type != record.TypeUser || r.IsMeta || r.Message == nil {
			continue
		}
		text := r.Message.TextContent()
		if text == "" {
			continue
		}
		if record.IsCommandMessage(text) || record.IsInterruption(text) || record.IsEmptyCommandOutput(text) {
			continue
		}
		cleaned := strings.Join(strings.Fields(text), " ")
		cleaned = strings.TrimRight(cleaned, ".")
		if cleaned == "" {
			continue
		}
		return cleaned
	}
	return ""
}

// SortByUpdated orders sessions most recently updated first, for listing.
func SortByUpdated(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastTime.After(sessions[j].LastTime)
	})
}
