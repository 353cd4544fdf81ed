package validator

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 5

// SuggestionList returns the options close enough to input to be worth
// suggesting, closest first.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}
	var found []candidate
	threshold := float64(len(input)) / 2
	for _, opt := range options {
		d := lexicalDistance(input, opt)
		limit := max(threshold, float64(len(opt))/2, 1)
		if float64(d) <= limit {
			found = append(found, candidate{opt, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].distance < found[j].distance })
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.option
	}
	return out
}

// lexicalDistance is the edit distance between a and b, where a
// difference in case alone costs 1.
func lexicalDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return 1
	}
	return levenshtein.ComputeDistance(la, lb)
}

// QuotedOrList renders up to five items as `"A", "B", or "C"`.
func QuotedOrList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	return OrList(quoted)
}

// OrList renders up to five items as `A, B, or C`.
func OrList(items []string) string {
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
