package narrative

import (
	"fmt"
	"strings"
)

// StartContext marks generation for the opening node.
const StartContext = "This is the start node. The listener has made no choices yet."

// HistoryContext renders path history as enumerated prompt context.
func HistoryContext(history []string) string {
	if len(history) == 0 {
		return StartContext
	}
	var sb strings.Builder
	sb.WriteString("Previous choices:")
	for i, choice := range history {
		fmt.Fprintf(&sb, " %d. %s", i+1, strings.TrimSpace(choice))
	}
	return sb.String()
}
