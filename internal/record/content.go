package record

import (
	"regexp"
	"strings"
)

// InterruptedSentinel is the literal text Claude Code writes when the user
// interrupts a tool call.
const InterruptedSentinel = "[Request interrupted by user for tool use]"

// CaveatPrefix marks the meta commentary local commands prepend.
const CaveatPrefix = "Caveat:"

var (
	commandRe     = regexp.MustCompile(`(?s)<command-name>(.*?)</command-name>(?:\s*<command-args>(.*?)</command-args>)?`)
	emptyOutputRe = regexp.MustCompile(`(?s)^\s*<local-command-stdout>\s*</local-command-stdout>\s*$`)
)

// IsCommandMessage reports whether text is a slash-command invocation.
func IsCommandMessage(text string) bool {
	return commandRe.MatchString(text)
}

// CommandParts extracts the command name and arguments from a command
// message. ok is false when text is not a command message.
func CommandParts(text string) (name, args string, ok bool) {
	m := commandRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// IsEmptyCommandOutput reports whether text is the empty local-command-output
// sentinel.
func IsEmptyCommandOutput(text string) bool {
	return emptyOutputRe.MatchString(text)
}

// IsInterruption reports whether text is the tool interruption sentinel.
func IsInterruption(text string) bool {
	return strings.TrimSpace(text) == InterruptedSentinel
}
