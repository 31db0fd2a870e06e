// Package speedrun parses, checks, and compares textual craft scripts:
// the "speedrun" format used to record and replay a manually curated
// craft sequence outside the discovery engine.
package speedrun

import (
	"fmt"
	"regexp"
	"strings"
)

// Craft is one parsed line of a script: combine A and B to produce
// Result. Target is set when the line's trailing comment contains "::",
// marking it as a script goal rather than an incidental intermediate.
type Craft struct {
	A, B, Result string
	Target       bool
	Line         int
}

var lineRe = regexp.MustCompile(`^(.+?)  \+  (.+?)  =  (.+)$`)

// blockCommentRe strips /* ... */ spans, including ones spanning
// multiple lines; newlines inside a stripped span are preserved so that
// line numbers after the span stay accurate.
var blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// Parse reads a script's raw text into an ordered list of crafts.
// Malformed lines are reported but do not stop the scan — every line is
// visited so a caller sees every problem in one pass, per the checker's
// "keep going" discipline.
func Parse(text string) ([]Craft, []error) {
	text = blockCommentRe.ReplaceAllStringFunc(text, func(s string) string {
		return strings.Repeat("\n", strings.Count(s, "\n"))
	})

	var crafts []Craft
	var errs []error

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := raw

		if idx := strings.Index(line, "  //"); idx >= 0 {
			comment := line[idx+len("  //"):]
			line = line[:idx]
			if strings.Contains(comment, "::") {
				line = strings.TrimRight(line, " ")
			}
		}

		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			errs = append(errs, fmt.Errorf("speedrun: line %d: does not match \"A  +  B  =  C\": %q", lineNo, raw))
			continue
		}

		target := false
		if commentIdx := strings.Index(raw, "  //"); commentIdx >= 0 {
			target = strings.Contains(raw[commentIdx:], "::")
		}

		crafts = append(crafts, Craft{
			A:      strings.TrimSpace(m[1]),
			B:      strings.TrimSpace(m[2]),
			Result: strings.TrimSpace(m[3]),
			Target: target,
			Line:   lineNo,
		})
	}

	return crafts, errs
}
