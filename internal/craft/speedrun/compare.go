package speedrun

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Diff is the result of comparing two speedrun scripts, grounded on the
// original's compare(): which result elements were added or removed
// outright, and which crafts for a still-present element changed.
type Diff struct {
	AddedElements   []string
	RemovedElements []string
	AddedCrafts     []Craft
	RemovedCrafts   []Craft
	Changed         map[string][2]Craft // result -> (original, new)
}

// Compare diffs two already-parsed scripts by their result elements and
// by exact (A, B, Result) craft identity.
func Compare(original, updated []Craft) Diff {
	origByResult := make(map[string]Craft, len(original))
	newByResult := make(map[string]Craft, len(updated))
	for _, c := range original {
		origByResult[c.Result] = c
	}
	for _, c := range updated {
		newByResult[c.Result] = c
	}

	diff := Diff{Changed: make(map[string][2]Craft)}

	for result := range newByResult {
		if _, ok := origByResult[result]; !ok {
			diff.AddedElements = append(diff.AddedElements, result)
		}
	}
	for result := range origByResult {
		if _, ok := newByResult[result]; !ok {
			diff.RemovedElements = append(diff.RemovedElements, result)
		}
	}

	for _, c := range original {
		n, ok := newByResult[c.Result]
		if !ok {
			diff.RemovedCrafts = append(diff.RemovedCrafts, c)
			continue
		}
		if c.A != n.A || c.B != n.B {
			diff.Changed[c.Result] = [2]Craft{c, n}
		}
	}
	for _, c := range updated {
		if _, ok := origByResult[c.Result]; !ok {
			diff.AddedCrafts = append(diff.AddedCrafts, c)
		}
	}

	return diff
}

// RenderTable writes diff as a human-readable table to w, in the same
// spirit as the original's printed compare() report.
func RenderTable(w io.Writer, diff Diff) {
	table := tablewriter.NewWriter(w)
	table.Header("Change", "A", "B", "Result")

	for _, c := range diff.AddedCrafts {
		table.Append("added", c.A, c.B, c.Result)
	}
	for _, c := range diff.RemovedCrafts {
		table.Append("removed", c.A, c.B, c.Result)
	}
	for result, pair := range diff.Changed {
		orig, updated := pair[0], pair[1]
		table.Append("changed (was)", orig.A, orig.B, result)
		table.Append("changed (now)", updated.A, updated.B, result)
	}

	table.Render()
}
