package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Run("string content", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1","message":{"role":"user","content":"Hello"}}`))
		require.NoError(t, err)
		assert.Equal(t, TypeUser, rec.Type)
		assert.Equal(t, "s1", rec.SessionID)
		require.NotNil(t, rec.Message)
		assert.True(t, rec.Message.Content.IsString())
		assert.Equal(t, "Hello", rec.Message.Content.Text)
	})

	t.Run("array content", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"assistant","sessionId":"s1","message":{"role":"assistant","content":[{"type":"text","text":"hi"},{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"ls"}}]}}`))
		require.NoError(t, err)
		require.NotNil(t, rec.Message)
		assert.False(t, rec.Message.Content.IsString())
		require.Len(t, rec.Message.Content.Items, 2)
		assert.Equal(t, ItemText, rec.Message.Content.Items[0].Type)
		use := rec.Message.Content.Items[1]
		assert.Equal(t, "t1", use.ID)
		assert.Equal(t, "Bash", use.Name)
		assert.Equal(t, "ls", use.Input["command"])
	})

	t.Run("nested tool_result content", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":[{"type":"text","text":"done"}]}]}}`))
		require.NoError(t, err)
		item := rec.Message.Content.Items[0]
		require.NotNil(t, item.Content)
		assert.False(t, item.Content.IsString())
		require.Len(t, item.Content.Items, 1)
		assert.Equal(t, "done", item.Content.Items[0].Text)
	})

	t.Run("tool_result string content", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":"ok","is_error":true}]}}`))
		require.NoError(t, err)
		item := rec.Message.Content.Items[0]
		assert.True(t, item.IsError)
		require.NotNil(t, item.Content)
		assert.True(t, item.Content.IsString())
		assert.Equal(t, "ok", item.Content.Text)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseLine([]byte(`{"type":`))
		assert.Error(t, err)
	})
}

func TestContentMarshalRoundTrip(t *testing.T) {
	t.Run("string form stays a string", func(t *testing.T) {
		var c Content
		require.NoError(t, json.Unmarshal([]byte(`"Hello"`), &c))
		out, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `"Hello"`, string(out))
	})

	t.Run("array form stays an array", func(t *testing.T) {
		var c Content
		require.NoError(t, json.Unmarshal([]byte(`[{"type":"text","text":"hi"}]`), &c))
		out, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"text":"hi"`)
		assert.True(t, string(out)[0] == '[')
	})
}

func TestMessageHelpers(t *testing.T) {
	t.Run("TextContent joins text items", func(t *testing.T) {
		m := &Message{Content: Content{Items: []ContentItem{
			{Type: ItemText, Text: "one"},
			{Type: ItemToolUse, ID: "t1"},
			{Type: ItemText, Text: "two"},
		}}}
		assert.Equal(t, "one\ntwo", m.TextContent())
	})

	t.Run("HasToolResult", func(t *testing.T) {
		m := &Message{Content: Content{Items: []ContentItem{{Type: ItemToolResult, ToolUseID: "t1"}}}}
		assert.True(t, m.HasToolResult())
		assert.False(t, (&Message{Content: Content{Text: "x", isString: true}}).HasToolResult())
		var nilMsg *Message
		assert.False(t, nilMsg.HasToolResult())
	})
}

func TestParseAll(t *testing.T) {
	input := `{"type":"user","sessionId":"s1","message":{"role":"user","content":"a"}}

not json
{"type":"assistant","sessionId":"s1","message":{"role":"assistant","content":"b"}}`

	records, skipped := ParseAll(input)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, skipped)
}

func TestValidate(t *testing.T) {
	input := `{"type":"user","sessionId":"s1","message":{"role":"user","content":"ok"}}
{bad
{"sessionId":"s1"}
{"type":"wat","sessionId":"s1"}
{"type":"assistant"}
{"type":"summary","summary":"t","leafUuid":"u1"}`

	issues := Validate(input)
	require.Len(t, issues, 4)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "invalid JSON")
	assert.Equal(t, 3, issues[1].Line)
	assert.Equal(t, "missing type", issues[1].Message)
	assert.Equal(t, 4, issues[2].Line)
	assert.Contains(t, issues[2].Message, `unknown type "wat"`)
	assert.Equal(t, 5, issues[3].Line)
	assert.Contains(t, issues[3].Message, "missing sessionId")
}

func TestParsedToolUseResult(t *testing.T) {
	t.Run("structured patch", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1","toolUseResult":{"filePath":"/w/a.go","structuredPatch":[{"oldStart":1,"oldLines":1,"newStart":1,"newLines":1,"lines":["-a","+b"]}]}}`))
		require.NoError(t, err)
		res := rec.ParsedToolUseResult()
		require.NotNil(t, res)
		assert.Equal(t, "/w/a.go", res.FilePath)
		require.Len(t, res.StructuredPatch, 1)
		assert.Equal(t, []string{"-a", "+b"}, res.StructuredPatch[0].Lines)
	})

	t.Run("bare string blob yields nil", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1","toolUseResult":"ran fine"}`))
		require.NoError(t, err)
		assert.Nil(t, rec.ParsedToolUseResult())
	})

	t.Run("absent blob yields nil", func(t *testing.T) {
		rec, err := ParseLine([]byte(`{"type":"user","sessionId":"s1"}`))
		require.NoError(t, err)
		assert.Nil(t, rec.ParsedToolUseResult())
	})
}

func TestContentClassifiers(t *testing.T) {
	t.Run("command parts", func(t *testing.T) {
		name, args, ok := CommandParts("<command-name>/model</command-name><command-args>opus</command-args>")
		require.True(t, ok)
		assert.Equal(t, "/model", name)
		assert.Equal(t, "opus", args)

		name, args, ok = CommandParts("<command-name>/clear</command-name>")
		require.True(t, ok)
		assert.Equal(t, "/clear", name)
		assert.Empty(t, args)

		_, _, ok = CommandParts("just text")
		assert.False(t, ok)
	})

	t.Run("empty command output", func(t *testing.T) {
		assert.True(t, IsEmptyCommandOutput("<local-command-stdout></local-command-stdout>"))
		assert.True(t, IsEmptyCommandOutput("  <local-command-stdout>\n</local-command-stdout>\n"))
		assert.False(t, IsEmptyCommandOutput("<local-command-stdout>hi</local-command-stdout>"))
	})

	t.Run("interruption", func(t *testing.T) {
		assert.True(t, IsInterruption("[Request interrupted by user for tool use]"))
		assert.False(t, IsInterruption("something else"))
	})
}
