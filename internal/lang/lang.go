// Package lang infers fenced-code-block language tags from file paths.
package lang

import (
	"path/filepath"
	"strings"
)

// Table maps file extensions and exact basenames to language tags. Tables
// are immutable after construction; tests can inject their own.
type Table struct {
	exts  map[string]string
	names map[string]string
}

// New builds a Table from extension (without dot, lower case) and basename
// lookup maps.
func New(exts, names map[string]string) *Table {
	t := &Table{exts: make(map[string]string, len(exts)), names: make(map[string]string, len(names))}
	for k, v := range exts {
		t.exts[strings.ToLower(k)] = v
	}
	for k, v := range names {
		t.names[k] = v
	}
	return t
}

// ForPath returns the language tag for a file path, or "" when unknown.
// Extension matching is case-insensitive; basenames match exactly.
func (t *Table) ForPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if tag, ok := t.names[base]; ok {
		return tag
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	if ext == "" {
		return ""
	}
	if tag, ok := t.exts[ext]; ok {
		return tag
	}
	return ""
}

// Default returns the built-in lookup tables.
func Default() *Table {
	return New(defaultExts, defaultNames)
}

var defaultExts = map[string]string{
	"go":     "go",
	"py":     "python",
	"js":     "javascript",
	"jsx":    "jsx",
	"mjs":    "javascript",
	"cjs":    "javascript",
	"ts":     "typescript",
	"tsx":    "tsx",
	"rb":     "ruby",
	"rs":     "rust",
	"java":   "java",
	"kt":     "kotlin",
	"c":      "c",
	"h":      "c",
	"cpp":    "cpp",
	"cc":     "cpp",
	"hpp":    "cpp",
	"cs":     "csharp",
	"sh":     "bash",
	"bash":   "bash",
	"zsh":    "bash",
	"fish":   "fish",
	"ps1":    "powershell",
	"md":     "markdown",
	"json":   "json",
	"jsonl":  "json",
	"yaml":   "yaml",
	"yml":    "yaml",
	"toml":   "toml",
	"xml":    "xml",
	"html":   "html",
	"css":    "css",
	"scss":   "scss",
	"sql":    "sql",
	"proto":  "protobuf",
	"swift":  "swift",
	"php":    "php",
	"pl":     "perl",
	"lua":    "lua",
	"r":      "r",
	"scala":  "scala",
	"clj":    "clojure",
	"ex":     "elixir",
	"exs":    "elixir",
	"erl":    "erlang",
	"hs":     "haskell",
	"ml":     "ocaml",
	"vim":    "vim",
	"tf":     "hcl",
	"gradle": "groovy",
	"dart":   "dart",
	"vue":    "vue",
	"svelte": "svelte",
	"zig":    "zig",
}

var defaultNames = map[string]string{
	"Dockerfile":     "dockerfile",
	"Makefile":       "makefile",
	"CMakeLists.txt": "cmake",
	"Gemfile":        "ruby",
	"Rakefile":       "ruby",
	".bashrc":        "bash",
	".zshrc":         "bash",
}
