package markdown

import (
	"fmt"
	"strings"

	"cc2md/internal/lang"
	"cc2md/internal/record"
)

const cancelledNotice = "**❌ User cancelled tool execution**"

// Processor converts one session's records into Markdown fragments. It must
// be fed records in session order; the caller is responsible for a final
// Flush after the last record.
type Processor struct {
	ctx   *Context
	langs *lang.Table
}

// NewProcessor returns a fresh processor. A nil table means the default
// language tables.
func NewProcessor(langs *lang.Table) *Processor {
	if langs == nil {
		langs = lang.Default()
	}
	return &Processor{ctx: newContext(), langs: langs}
}

// Process converts the record at index idx of all into Markdown lines,
// mutating the processor's context as a side effect.
func (p *Processor) Process(rec *record.Record, all []record.Record, idx int) []string {
	if rec.Cwd != "" {
		p.ctx.cwd = rec.Cwd
	}
	switch rec.Type {
	case record.TypeUser:
		return p.processUser(rec, all, idx)
	case record.TypeAssistant:
		return p.processAssistant(rec)
	}
	// summary records are handled at the session level; anything else is
	// ignored, not an error
	return nil
}

// Flush renders any still-pending tool results. Call once after the last
// record of the session.
func (p *Processor) Flush() []string {
	return p.flushResults()
}

func (p *Processor) flushResults() []string {
	if len(p.ctx.pendingResults) == 0 {
		return nil
	}
	out := formatResults(p.ctx.pendingResults, p.ctx, p.langs)
	p.ctx.pendingResults = nil
	return out
}

// shouldDeferFlush reports whether more tool results for the same batch are
// still arriving in the next record, in which case flushing must wait.
func shouldDeferFlush(cur, next *record.Record) bool {
	_ = cur
	if next == nil || next.Type != record.TypeUser {
		return false
	}
	return next.Message.HasToolResult()
}

func (p *Processor) processUser(rec *record.Record, all []record.Record, idx int) []string {
	if rec.IsAPIErrorMessage || rec.Message == nil {
		return nil
	}
	if isCaveat(rec) {
		return nil
	}
	if rec.IsMeta {
		return metaDetails(rec.Message.TextContent())
	}

	// the toolUseResult blob travels with the record's own result items, so
	// it is captured per item rather than held as session state
	meta := rec.ParsedToolUseResult()

	if rec.Message.Content.IsString() {
		return p.userText(rec.Message.Content.Text)
	}

	items := rec.Message.Content.Items
	var results []record.ContentItem
	var texts []string
	for _, it := range items {
		switch it.Type {
		case record.ItemToolResult:
			results = append(results, it)
		case record.ItemText:
			if it.Text != "" {
				texts = append(texts, it.Text)
			}
		}
	}

	if len(results) == 0 {
		if len(texts) == 0 {
			return nil
		}
		return p.userText(strings.Join(texts, "\n"))
	}

	var lines []string
	cancelled := false
	for _, it := range results {
		if it.IsError {
			cancelled = true
			break
		}
	}
	if cancelled {
		lines = append(lines, cancelledNotice, "")
	}

	for _, it := range results {
		prMeta := meta
		if it.IsError {
			// a cancelled edit still renders as a diff; other cancelled
			// tools are covered by the notice alone
			syn := p.synthesizeCancelledEdit(it.ToolUseID)
			if syn == nil {
				continue
			}
			it.IsError = false
			prMeta = syn
		}
		p.ctx.pendingResults = append(p.ctx.pendingResults, pendingResult{item: it, meta: prMeta})
	}

	var next *record.Record
	if idx+1 < len(all) {
		next = &all[idx+1]
	}
	if !shouldDeferFlush(rec, next) {
		lines = append(lines, p.flushResults()...)
	}

	if len(texts) > 0 {
		text := strings.Join(texts, "\n")
		if !record.IsInterruption(text) {
			lines = append(lines, userSection(text)...)
		}
	}
	return lines
}

func (p *Processor) processAssistant(rec *record.Record) []string {
	if rec.IsAPIErrorMessage || rec.Message == nil {
		return nil
	}
	c := rec.Message.Content
	if c.IsString() {
		if c.Text == "" {
			return nil
		}
		return []string{"### Assistant", "", c.Text, ""}
	}

	var texts []record.ContentItem
	var uses []record.ContentItem
	for _, it := range c.Items {
		switch it.Type {
		case record.ItemText:
			if it.Text != "" {
				texts = append(texts, it)
			}
		case record.ItemToolUse:
			uses = append(uses, it)
		}
	}

	var lines []string
	if len(texts) > 0 {
		lines = append(lines, "### Assistant", "")
		for _, t := range texts {
			lines = append(lines, t.Text, "")
		}
	}
	// tool uses are not rendered here: they surface later, paired with
	// their results
	for _, u := range uses {
		if u.ID != "" {
			p.ctx.usesByID[u.ID] = u
		}
	}
	return lines
}

// userText renders plain string content: command messages and sentinels get
// special handling, everything else becomes a blockquoted User section.
func (p *Processor) userText(text string) []string {
	if record.IsEmptyCommandOutput(text) {
		return nil
	}
	if name, args, ok := record.CommandParts(text); ok {
		if name == "/clear" {
			return []string{"**Session cleared**", ""}
		}
		line := name
		if args != "" {
			line = fmt.Sprintf("%s %q", name, args)
		}
		return []string{"### User", "", "> " + line, ""}
	}
	return userSection(text)
}

func userSection(text string) []string {
	lines := []string{"### User", ""}
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, blockquote(l))
	}
	return append(lines, "")
}

func blockquote(line string) string {
	if line == "" {
		return ">"
	}
	return "> " + line
}

// metaDetails renders non-caveat meta commentary as a collapsed block.
func metaDetails(text string) []string {
	if text == "" {
		return nil
	}
	first := text
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	lines := []string{"<details>", "<summary>" + truncate(first, 50) + "</summary>", ""}
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, blockquote(l))
	}
	return append(lines, "", "</details>", "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func isCaveat(rec *record.Record) bool {
	if !rec.IsMeta {
		return false
	}
	return strings.HasPrefix(rec.Message.FirstText(), record.CaveatPrefix)
}

// synthesizeCancelledEdit rebuilds a structured patch for a cancelled Edit
// so the attempted change still renders as a diff.
func (p *Processor) synthesizeCancelledEdit(toolUseID string) *record.ToolUseResult {
	use, ok := p.ctx.toolUse(toolUseID)
	if !ok || use.Name != "Edit" {
		return nil
	}
	path, _ := use.Input["file_path"].(string)
	oldStr, _ := use.Input["old_string"].(string)
	newStr, _ := use.Input["new_string"].(string)
	if path == "" || (oldStr == "" && newStr == "") {
		return nil
	}

	var lines []string
	oldCount, newCount := 0, 0
	if oldStr != "" {
		for _, l := range strings.Split(oldStr, "\n") {
			lines = append(lines, "-"+l)
			oldCount++
		}
	}
	if newStr != "" {
		for _, l := range strings.Split(newStr, "\n") {
			lines = append(lines, "+"+l)
			newCount++
		}
	}
	return &record.ToolUseResult{
		FilePath: path,
		StructuredPatch: []record.PatchHunk{{
			OldStart: 1, OldLines: oldCount,
			NewStart: 1, NewLines: newCount,
			Lines: lines,
		}},
	}
}
