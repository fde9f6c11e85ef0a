package record

import (
	"encoding/json"
)

// Record types found in transcript files.
const (
	TypeUser      = "user"
	TypeAssistant = "assistant"
	TypeSummary   = "summary"
	TypeSystem    = "system"
)

// Content item types.
const (
	ItemText       = "text"
	ItemToolUse    = "tool_use"
	ItemToolResult = "tool_result"
)

// Record is one parsed line of a transcript file.
type Record struct {
	Type              string          `json:"type"`
	SessionID         string          `json:"sessionId,omitempty"`
	UUID              string          `json:"uuid,omitempty"`
	LeafUUID          string          `json:"leafUuid,omitempty"`
	Summary           string          `json:"summary,omitempty"`
	Timestamp         string          `json:"timestamp,omitempty"`
	Cwd               string          `json:"cwd,omitempty"`
	IsMeta            bool            `json:"isMeta,omitempty"`
	IsAPIErrorMessage bool            `json:"isApiErrorMessage,omitempty"`
	Message           *Message        `json:"message,omitempty"`
	ToolUseResult     json.RawMessage `json:"toolUseResult,omitempty"`
}

// Message is the role + content payload of a user or assistant record.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is either a plain string (legacy form) or an ordered sequence of
// content items.
type Content struct {
	Text  string
	Items []ContentItem

	isString bool
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.isString = true
		return nil
	}
	var items []ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.Items = items
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.isString {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Items)
}

// IsString reports whether the content was the legacy plain-string form.
func (c Content) IsString() bool { return c.isString }

// ContentItem is one unit inside a message's content.
type ContentItem struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   *Content       `json:"content,omitempty"`
	IsError   bool           `json:"is_error,omitempty"`
}

// TextContent returns the message's plain text: the string content itself,
// or every text item's text joined with newlines.
func (m *Message) TextContent() string {
	if m == nil {
		return ""
	}
	if m.Content.IsString() {
		return m.Content.Text
	}
	var parts []string
	for _, it := range m.Content.Items {
		if it.Type == ItemText && it.Text != "" {
			parts = append(parts, it.Text)
		}
	}
	return joinLines(parts)
}

// FirstText returns the string content, or the first text item's text.
func (m *Message) FirstText() string {
	if m == nil {
		return ""
	}
	if m.Content.IsString() {
		return m.Content.Text
	}
	for _, it := range m.Content.Items {
		if it.Type == ItemText {
			return it.Text
		}
	}
	return ""
}

// HasToolResult reports whether the message carries at least one tool_result
// content item.
func (m *Message) HasToolResult() bool {
	if m == nil || m.Content.IsString() {
		return false
	}
	for _, it := range m.Content.Items {
		if it.Type == ItemToolResult {
			return true
		}
	}
	return false
}

func joinLines(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "\n" + p
	}
	return out
}

// ToolUseResult is the structured result metadata some user records attach
// alongside a tool_result item. Only the fields needed for diff rendering
// are decoded.
type ToolUseResult struct {
	FilePath        string      `json:"filePath,omitempty"`
	OldString       string      `json:"oldString,omitempty"`
	NewString       string      `json:"newString,omitempty"`
	StructuredPatch []PatchHunk `json:"structuredPatch,omitempty"`
}

// PatchHunk is one hunk of a structured patch. Lines carry their +/-/space
// prefixes verbatim.
type PatchHunk struct {
	OldStart int      `json:"oldStart"`
	OldLines int      `json:"oldLines"`
	NewStart int      `json:"newStart"`
	NewLines int      `json:"newLines"`
	Lines    []string `json:"lines"`
}

// ParsedToolUseResult decodes the record's toolUseResult blob. Records whose
// blob is a bare string (or anything else non-object) yield nil.
func (r *Record) ParsedToolUseResult() *ToolUseResult {
	if len(r.ToolUseResult) == 0 {
		return nil
	}
	var res ToolUseResult
	if err := json.Unmarshal(r.ToolUseResult, &res); err != nil {
		return nil
	}
	if res.FilePath == "" && res.OldString == "" && res.NewString == "" && len(res.StructuredPatch) == 0 {
		return nil
	}
	return &res
}
