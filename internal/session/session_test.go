package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cc2md/internal/record"
)

func stringContent(text string) record.Content {
	var c record.Content
	if err := c.UnmarshalJSON([]byte(`"` + text + `"`)); err != nil {
		panic(err)
	}
	return c
}

func userRec(sessionID, uuid, text string) record.Record {
	return record.Record{
		Type:      record.TypeUser,
		SessionID: sessionID,
		UUID:      uuid,
		Message:   &record.Message{Role: "user", Content: stringContent(text)},
	}
}

func assistantRec(sessionID, uuid, text string) record.Record {
	return record.Record{
		Type:      record.TypeAssistant,
		SessionID: sessionID,
		UUID:      uuid,
		Message:   &record.Message{Role: "assistant", Content: stringContent(text)},
	}
}

func TestSegmentGrouping(t *testing.T) {
	records := []record.Record{
		userRec("a", "u1", "hello a"),
		userRec("b", "u2", "hello b"),
		assistantRec("a", "u3", "reply a"),
		{Type: record.TypeSystem}, // no sessionId, dropped
		assistantRec("b", "u4", "reply b"),
	}

	sessions := Segment(records)
	require.Len(t, sessions, 2)

	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
	assert.Len(t, sessions[0].Records, 2)
	assert.Len(t, sessions[1].Records, 2)

	// record conservation: every sessionId-bearing record lands in its bucket
	total := 0
	for _, s := range sessions {
		total += len(s.Records)
		for _, r := range s.Records {
			assert.NotEmpty(t, r.SessionID)
		}
	}
	assert.Equal(t, 4, total)
}

func TestSegmentBoundarySplit(t *testing.T) {
	records := []record.Record{
		{Type: record.TypeSummary, LeafUUID: "u2", Summary: "First part"},
		userRec("s", "u1", "one"),
		assistantRec("s", "u2", "two"),
		userRec("s", "u3", "three"),
		assistantRec("s", "u4", "four"),
	}

	sessions := Segment(records)
	require.Len(t, sessions, 2)

	first, second := sessions[0], sessions[1]
	assert.Equal(t, "s", first.ID)
	assert.Equal(t, "First part", first.Summary)
	assert.Len(t, first.Records, 2)
	assert.Equal(t, "u2", first.Records[1].UUID)

	assert.Equal(t, "s_1", second.ID)
	assert.Empty(t, second.Summary)
	assert.Len(t, second.Records, 2)
	assert.Equal(t, "u3", second.Records[0].UUID)
}

func TestSegmentSummaryWithoutSplit(t *testing.T) {
	// boundary on the final record: summary applies, no extra chunk
	records := []record.Record{
		userRec("s", "u1", "one"),
		assistantRec("s", "u2", "two"),
		{Type: record.TypeSummary, LeafUUID: "u2", Summary: "Whole thing"},
	}

	sessions := Segment(records)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s", sessions[0].ID)
	assert.Equal(t, "Whole thing", sessions[0].Summary)
	assert.Equal(t, 2, sessions[0].MessageCount)
}

func TestSegmentDiscardsEmptySessions(t *testing.T) {
	records := []record.Record{
		{Type: record.TypeSystem, SessionID: "sys-only"},
	}
	assert.Empty(t, Segment(records))
}

func TestGeneratedSummary(t *testing.T) {
	t.Run("cleans whitespace and trailing periods", func(t *testing.T) {
		records := []record.Record{
			userRec("s", "u1", "  Build a\\nweb   scraper.."),
		}
		// raw JSON string escape: the content is "  Build a\nweb   scraper.."
		sessions := Segment(records)
		require.Len(t, sessions, 1)
		assert.Equal(t, "Build a web scraper", sessions[0].GeneratedSummary)
		assert.Equal(t, "Build a web scraper", sessions[0].Title())
	})

	t.Run("skips commands and interruptions", func(t *testing.T) {
		records := []record.Record{
			userRec("s", "u1", "<command-name>/clear</command-name>"),
			userRec("s", "u2", "[Request interrupted by user for tool use]"),
			userRec("s", "u3", "Real question"),
		}
		sessions := Segment(records)
		require.Len(t, sessions, 1)
		assert.Equal(t, "Real question", sessions[0].GeneratedSummary)
	})

	t.Run("explicit summary wins over generated", func(t *testing.T) {
		records := []record.Record{
			userRec("s", "u1", "Generated title"),
			{Type: record.TypeSummary, LeafUUID: "u1", Summary: "Explicit title"},
		}
		sessions := Segment(records)
		require.Len(t, sessions, 1)
		assert.Equal(t, "Explicit title", sessions[0].Title())
	})

	t.Run("untitled fallback", func(t *testing.T) {
		s := &Session{}
		assert.Equal(t, "Untitled", s.Title())
	})
}

func TestSegmentTimestamps(t *testing.T) {
	r1 := userRec("s", "u1", "one")
	r1.Timestamp = "2024-01-01T00:00:00Z"
	r2 := assistantRec("s", "u2", "two")
	r2.Timestamp = "123e4567-e89b-12d3-a456-426614174000" // uuid, not a timestamp
	r3 := userRec("s", "u3", "three")
	r3.Timestamp = "2024-01-02T00:00:00Z"

	sessions := Segment([]record.Record{r1, r2, r3})
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "2024-01-01", s.FirstTime.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-01-02", s.LastTime.UTC().Format("2006-01-02"))
}

func TestSortByUpdated(t *testing.T) {
	older := userRec("old", "u1", "x")
	older.Timestamp = "2024-01-01T00:00:00Z"
	newer := userRec("new", "u2", "y")
	newer.Timestamp = "2024-06-01T00:00:00Z"

	sessions := Segment([]record.Record{older, newer})
	require.Len(t, sessions, 2)
	SortByUpdated(sessions)
	assert.Equal(t, "new", sessions[0].ID)
	assert.Equal(t, "old", sessions[1].ID)
}
