package markdown

import "cc2md/internal/record"

// Context is the per-session mutable state threaded through the processor.
// It is owned by exactly one Processor; the formatter reads it through the
// narrow contextView interface.
type Context struct {
	cwd            string
	pendingResults []pendingResult
	usesByID       map[string]record.ContentItem
}

// pendingResult is a queued tool_result item together with the toolUseResult
// metadata captured from the record that carried it.
type pendingResult struct {
	item record.ContentItem
	meta *record.ToolUseResult
}

func newContext() *Context {
	return &Context{usesByID: make(map[string]record.ContentItem)}
}

// contextView is the read surface the formatter gets.
type contextView interface {
	Cwd() string
	toolUse(id string) (record.ContentItem, bool)
}

// Cwd returns the current working directory active for the session, updated
// as records carrying a cwd are processed.
func (c *Context) Cwd() string { return c.cwd }

func (c *Context) toolUse(id string) (record.ContentItem, bool) {
	if id == "" {
		return record.ContentItem{}, false
	}
	use, ok := c.usesByID[id]
	return use, ok
}
