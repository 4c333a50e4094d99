// Package types holds the proofreading result model and the structured
// output schema the model is bound to.
//
// All span offsets are Unicode code point indexes into the original input,
// 0-based, with an inclusive end.
package types

import (
	"fmt"
	"unicode/utf8"
)

// Proofreading is the validated result of one proofreading request.
type Proofreading struct {
	Corrected   string       `json:"corrected"`
	Corrections []Correction `json:"corrections"`
}

// Correction is a single flagged span in the original input.
type Correction struct {
	StartIndex  int            `json:"startIndex"`
	EndIndex    int            `json:"endIndex"`
	Correction  string         `json:"correction"`
	Type        CorrectionType `json:"type"`
	Explanation string         `json:"explanation"`
}

// InBounds reports whether the span satisfies 0 <= start <= end < length,
// where length is counted in code points.
func (c Correction) InBounds(length int) bool {
	return c.StartIndex >= 0 && c.StartIndex <= c.EndIndex && c.EndIndex < length
}

// ByteRange converts the span into a half-open byte range [from, to) of input.
func (c Correction) ByteRange(input string) (from, to int, err error) {
	n := utf8.RuneCountInString(input)
	if !c.InBounds(n) {
		return 0, 0, fmt.Errorf("span [%d,%d] out of range for %d characters", c.StartIndex, c.EndIndex, n)
	}
	from, to = -1, len(input)
	i := 0
	for pos := range input {
		if i == c.StartIndex {
			from = pos
		}
		if i == c.EndIndex+1 {
			to = pos
			break
		}
		i++
	}
	return from, to, nil
}

// Original returns the flagged substring of input.
func (c Correction) Original(input string) (string, error) {
	from, to, err := c.ByteRange(input)
	if err != nil {
		return "", err
	}
	return input[from:to], nil
}

// Length counts code points the same way span offsets are counted.
func Length(input string) int {
	return utf8.RuneCountInString(input)
}
