package markdown

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cc2md/internal/lang"
	"cc2md/internal/record"
)

const listingMaxLines = 50

// formatResults renders every queued tool result in order.
func formatResults(pending []pendingResult, ctx contextView, langs *lang.Table) []string {
	var out []string
	for _, pr := range pending {
		out = append(out, formatResult(pr, ctx, langs)...)
	}
	return out
}

// formatResult renders one tool call + result pair. Priority: structured
// patch diff, then TodoWrite checklist, then a collapsed details block.
func formatResult(pr pendingResult, ctx contextView, langs *lang.Table) []string {
	if pr.meta != nil && len(pr.meta.StructuredPatch) > 0 && pr.meta.FilePath != "" {
		return patchDiff(pr.meta, ctx)
	}

	use, known := ctx.toolUse(pr.item.ToolUseID)
	if known && use.Name == "TodoWrite" {
		return todoChecklist(use)
	}

	var summary string
	if known {
		summary = summaryLine(use, ctx)
	} else {
		summary = classifyOrphan(itemText(pr.item))
	}

	lines := []string{"<details>", "<summary>" + summary + "</summary>", ""}
	lines = append(lines, bodyLines(use, known, pr.item, langs)...)
	return append(lines, "", "</details>", "")
}

// patchDiff renders a structured patch as a unified diff, hunks in order,
// lines verbatim.
func patchDiff(meta *record.ToolUseResult, ctx contextView) []string {
	lines := []string{"**Edit:** " + RelativePath(meta.FilePath, ctx.Cwd()), "", "```diff"}
	for _, h := range meta.StructuredPatch {
		lines = append(lines, h.Lines...)
	}
	return append(lines, "```", "")
}

// todoChecklist renders a TodoWrite invocation as an uncollapsed checklist.
func todoChecklist(use record.ContentItem) []string {
	lines := []string{"**Updated task list**", ""}
	todos, _ := use.Input["todos"].([]any)
	for _, t := range todos {
		m, ok := t.(map[string]any)
		if !ok {
			continue
		}
		content, _ := m["content"].(string)
		status, _ := m["status"].(string)
		box := "[ ]"
		switch status {
		case "completed":
			box = "[x]"
		case "in_progress":
			content += " (in progress)"
		}
		lines = append(lines, "- "+box+" "+content)
	}
	return append(lines, "")
}

// summaryLine builds the details summary for a known originating tool.
func summaryLine(use record.ContentItem, ctx contextView) string {
	in := use.Input
	switch use.Name {
	case "Read":
		s := "Read: " + RelativePath(inputString(in, "file_path"), ctx.Cwd())
		if limit, ok := inputNumber(in, "limit"); ok {
			s += fmt.Sprintf(" (limit %s)", limit)
		}
		return s
	case "Grep":
		target := RelativePath(inputString(in, "path"), ctx.Cwd())
		if target == "" {
			target = "current directory"
		}
		s := fmt.Sprintf("Grep: %q in %s", inputString(in, "pattern"), target)
		if include := inputString(in, "include"); include != "" {
			s += " (" + include + ")"
		}
		return s
	case "Edit":
		return "Edit: " + RelativePath(inputString(in, "file_path"), ctx.Cwd())
	case "Write":
		return "Write: " + RelativePath(inputString(in, "file_path"), ctx.Cwd())
	case "Bash":
		return "Bash: " + normalizeBashCommand(inputString(in, "command"))
	case "LS":
		target := RelativePath(inputString(in, "path"), ctx.Cwd())
		if target == "" {
			target = "current directory"
		}
		return "LS: " + target
	case "TodoWrite":
		return "Updated task list"
	}
	return use.Name + ": " + genericInput(in)
}

// normalizeBashCommand lower-cases a bare LS invocation for display.
func normalizeBashCommand(cmd string) string {
	if cmd == "LS" {
		return "ls"
	}
	if strings.HasPrefix(cmd, "LS ") {
		return "ls" + cmd[2:]
	}
	return cmd
}

// genericInput renders an unknown tool's input map: a lone value when there
// is one key, comma-joined pairs otherwise.
func genericInput(in map[string]any) string {
	if len(in) == 1 {
		for _, v := range in {
			return fmt.Sprint(v)
		}
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, in[k]))
	}
	return strings.Join(parts, ", ")
}

func inputString(in map[string]any, key string) string {
	s, _ := in[key].(string)
	return s
}

func inputNumber(in map[string]any, key string) (string, bool) {
	switch v := in[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case string:
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// Orphaned-result classification: a ranked list of (predicate, renderer)
// pairs tried in order against the raw content.

type orphanRule struct {
	match  func(string) bool
	render func(string) string
}

var (
	lineNumberRe      = regexp.MustCompile(`^\s*\d+→`)
	lineNumberStripRe = regexp.MustCompile(`(?m)^\s*\d+→`)
	foundFilesRe      = regexp.MustCompile(`^Found \d+ files?`)
	absPathRe         = regexp.MustCompile(`^/\S+$`)
	receivedRe        = regexp.MustCompile(`^Received \d+`)
	codeKeywordRe     = regexp.MustCompile(`^(import|export|const|let|var|function|class|def|package|func)\b`)
)

var orphanRules = []orphanRule{
	{
		match: func(s string) bool { return lineNumberRe.MatchString(s) },
		render: func(s string) string {
			return fmt.Sprintf("Read: file content (%d lines)", countLines(s))
		},
	},
	{
		match:  func(s string) bool { return foundFilesRe.MatchString(s) },
		render: func(s string) string { return "Search: " + firstLine(s) },
	},
	{
		match: func(s string) bool { return absPathRe.MatchString(firstLine(s)) },
		render: func(s string) string {
			return fmt.Sprintf("Search: found %d file(s)", countLines(s))
		},
	},
	{
		match: func(s string) bool {
			return strings.Contains(s, "has been updated") ||
				strings.Contains(s, "created successfully") ||
				strings.Contains(s, "deleted successfully")
		},
		render: func(s string) string { return "Edit: " + firstLine(s) },
	},
	{
		match: func(s string) bool {
			return strings.Contains(s, "Tool ran without output") ||
				strings.Contains(s, "Command completed")
		},
		render: func(s string) string { return "Command completed successfully" },
	},
	{
		match:  func(s string) bool { return receivedRe.MatchString(s) },
		render: func(s string) string { return "Fetch: " + firstLine(s) },
	},
}

// classifyOrphan infers a summary line from content shape alone, for results
// whose originating tool call is unknown.
func classifyOrphan(content string) string {
	for _, rule := range orphanRules {
		if rule.match(content) {
			return rule.render(content)
		}
	}
	return fmt.Sprintf("Tool result: %d characters", len(content))
}

// bodyLines renders the details body for a tool result.
func bodyLines(use record.ContentItem, known bool, item record.ContentItem, langs *lang.Table) []string {
	// nested content items: emit the text items only
	if item.Content != nil && !item.Content.IsString() {
		var lines []string
		for _, it := range item.Content.Items {
			if it.Type == record.ItemText && it.Text != "" {
				lines = append(lines, it.Text)
			}
		}
		return lines
	}

	text := itemText(item)
	if known && isListing(use) {
		return fencedTruncated(text)
	}
	if lineNumberRe.MatchString(text) {
		tag := ""
		if known {
			tag = langs.ForPath(inputString(use.Input, "file_path"))
		}
		return fenced(lineNumberStripRe.ReplaceAllString(text, ""), tag)
	}
	if tag, ok := looksLikeCode(text); ok {
		return fenced(text, tag)
	}
	return fenced(text, "")
}

// isListing reports whether the tool output is a directory listing subject
// to truncation.
func isListing(use record.ContentItem) bool {
	if use.Name == "LS" {
		return true
	}
	if use.Name != "Bash" {
		return false
	}
	cmd := inputString(use.Input, "command")
	return cmd == "ls" || cmd == "LS" ||
		strings.HasPrefix(cmd, "ls ") || strings.HasPrefix(cmd, "LS ")
}

// looksLikeCode applies the content heuristics for source-like text. The
// declaration-keyword case defaults to javascript.
func looksLikeCode(text string) (tag string, ok bool) {
	first := firstLine(text)
	if foundFilesRe.MatchString(first) || absPathRe.MatchString(first) {
		return "", true
	}
	if codeKeywordRe.MatchString(strings.TrimSpace(first)) {
		return "javascript", true
	}
	return "", false
}

func fenced(text, tag string) []string {
	lines := []string{"```" + tag}
	lines = append(lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	return append(lines, "```")
}

// fencedTruncated fences listing output, keeping only the first 50 lines.
func fencedTruncated(text string) []string {
	all := strings.Split(strings.TrimRight(text, "\n"), "\n")
	lines := []string{"```"}
	if len(all) > listingMaxLines {
		lines = append(lines, all[:listingMaxLines]...)
		lines = append(lines, fmt.Sprintf("... (%d more lines)", len(all)-listingMaxLines))
	} else {
		lines = append(lines, all...)
	}
	return append(lines, "```")
}

// itemText extracts the tool result's flat text content.
func itemText(item record.ContentItem) string {
	if item.Content != nil {
		if item.Content.IsString() {
			return item.Content.Text
		}
		var parts []string
		for _, it := range item.Content.Items {
			if it.Type == record.ItemText && it.Text != "" {
				parts = append(parts, it.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return item.Text
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func countLines(s string) int {
	return len(strings.Split(strings.TrimRight(s, "\n"), "\n"))
}
