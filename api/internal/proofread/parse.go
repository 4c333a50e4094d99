package proofread

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"proofreader/api/internal/proofread/types"
)

const schemaURL = "proofreading.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(types.JSONSchema())); err != nil {
		return nil, fmt.Errorf("load proofreading schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile proofreading schema: %w", err)
	}
	return s, nil
})

// Parse decodes raw model output and validates it against input, the exact
// string the request was composed from. The model output is never repaired.
func Parse(raw, input string) (types.Proofreading, error) {
	p, err := Decode(raw)
	if err != nil {
		return types.Proofreading{}, err
	}
	if err := CheckBounds(p, input); err != nil {
		var be *BoundsError
		if errors.As(err, &be) {
			be.Raw = raw
		}
		return types.Proofreading{}, err
	}
	return p, nil
}

// Decode validates raw against the response schema and decodes it.
func Decode(raw string) (types.Proofreading, error) {
	schema, err := compiledSchema()
	if err != nil {
		return types.Proofreading{}, err
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return types.Proofreading{}, &MalformedOutputError{Raw: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return types.Proofreading{}, &MalformedOutputError{Raw: raw, Err: err}
	}

	var p types.Proofreading
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return types.Proofreading{}, &MalformedOutputError{Raw: raw, Err: err}
	}
	return p, nil
}

// CheckBounds enforces 0 <= startIndex <= endIndex < length(input) for every
// correction, counting code points of the original input.
func CheckBounds(p types.Proofreading, input string) error {
	n := types.Length(input)
	for i, c := range p.Corrections {
		if !c.InBounds(n) {
			return &BoundsError{Index: i, StartIndex: c.StartIndex, EndIndex: c.EndIndex, Length: n}
		}
	}
	return nil
}
