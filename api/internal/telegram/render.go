package telegram

import (
	"fmt"
	"strings"

	"proofreader/api/internal/proofread/types"
)

// Render formats a validated result against the original input.
func Render(input string, p types.Proofreading) string {
	if len(p.Corrections) == 0 {
		return "✅ No mistakes found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d issue(s):\n\n", len(p.Corrections))
	for i, c := range p.Corrections {
		orig, err := c.Original(input)
		if err != nil {
			// validated results never get here
			orig = "?"
		}
		fmt.Fprintf(&b, "%d. «%s» → «%s» (%s)\n", i+1, orig, c.Correction, c.Type)
		if e := strings.TrimSpace(c.Explanation); e != "" {
			fmt.Fprintf(&b, "   %s\n", e)
		}
	}
	b.WriteString("\n📝 Corrected:\n")
	b.WriteString(p.Corrected)
	return b.String()
}
