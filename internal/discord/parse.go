package discord

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseCommand extracts the command name from a chat message. The message must
// start with prefix immediately followed by the name; arguments after the name
// are ignored.
func ParseCommand(prefix, content string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", false
	}

	rest := content[len(prefix):]
	first, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || unicode.IsSpace(first) {
		return "", false
	}

	return strings.Fields(rest)[0], true
}
