package parser

import (
	"regexp"
	"strings"
)

// wrappingFence matches a reply that is entirely one fenced block, such as
// ```markdown ... ```. Fences inside the document are left alone.
var wrappingFence = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\r?\n(.*?)\r?\n?```$")

// CleanDraft tidies a model reply before it is shown or saved: surrounding
// whitespace is trimmed and an outer code fence is removed.
func CleanDraft(raw string) string {
	text := strings.TrimSpace(raw)
	if m := wrappingFence.FindStringSubmatch(text); m != nil {
		// A closing fence that also opens a later block means the reply was
		// not a single wrapped block.
		if !strings.Contains(m[1], "```") {
			return strings.TrimSpace(m[1])
		}
	}
	return text
}
