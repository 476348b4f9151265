// Package metrics holds local text features and API usage accounting.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features are size measures of a piece of user input.
type Features struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// CountFeatures measures s. Words split on Unicode whitespace; lines are one
// more than the number of '\n', or zero for the empty string.
func CountFeatures(s string) Features {
	f := Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		f.Lines = 1 + strings.Count(s, "\n")
	}
	return f
}
