package types

import (
	"encoding/json"
	"fmt"
)

// CorrectionType is the closed set of mistake categories the model may report.
type CorrectionType string

const (
	Spelling       CorrectionType = "spelling"
	Punctuation    CorrectionType = "punctuation"
	Capitalization CorrectionType = "capitalization"
	Preposition    CorrectionType = "preposition"
	MissingWords   CorrectionType = "missing-words"
	Grammar        CorrectionType = "grammar"
)

var correctionTypes = []CorrectionType{
	Spelling,
	Punctuation,
	Capitalization,
	Preposition,
	MissingWords,
	Grammar,
}

// AllCorrectionTypes returns every category in declaration order.
func AllCorrectionTypes() []CorrectionType {
	out := make([]CorrectionType, len(correctionTypes))
	copy(out, correctionTypes)
	return out
}

func (t CorrectionType) Valid() bool {
	for _, v := range correctionTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t CorrectionType) String() string { return string(t) }

// UnmarshalJSON rejects anything outside the closed set, so an unknown
// category fails decoding instead of passing through as a free string.
func (t *CorrectionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("correction type: %w", err)
	}
	v := CorrectionType(s)
	if !v.Valid() {
		return fmt.Errorf("correction type: unknown value %q", s)
	}
	*t = v
	return nil
}

func enumValues() []string {
	out := make([]string, 0, len(correctionTypes))
	for _, v := range correctionTypes {
		out = append(out, string(v))
	}
	return out
}
