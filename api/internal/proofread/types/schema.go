package types

import (
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// Field names of the structured output contract.
const (
	FieldCorrected   = "corrected"
	FieldCorrections = "corrections"

	FieldStartIndex  = "startIndex"
	FieldEndIndex    = "endIndex"
	FieldCorrection  = "correction"
	FieldType        = "type"
	FieldExplanation = "explanation"
)

// ResponseSchema returns the schema bound to the model's structured output
// mode. A fresh value is returned on every call; callers may not share it.
func ResponseSchema() *genai.Schema {
	correction := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldStartIndex: {
				Type:        genai.TypeInteger,
				Description: "0-based index of the first character of the error in the original text",
			},
			FieldEndIndex: {
				Type:        genai.TypeInteger,
				Description: "0-based index of the last character of the error in the original text",
			},
			FieldCorrection: {Type: genai.TypeString},
			FieldType: {
				Type:   genai.TypeString,
				Format: "enum",
				Enum:   enumValues(),
			},
			FieldExplanation: {Type: genai.TypeString},
		},
		Required: []string{FieldStartIndex, FieldEndIndex, FieldCorrection, FieldType, FieldExplanation},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldCorrected: {Type: genai.TypeString},
			FieldCorrections: {
				Type:  genai.TypeArray,
				Items: correction,
			},
		},
		Required: []string{FieldCorrected, FieldCorrections},
	}
}

// JSONSchema renders ResponseSchema as a JSON Schema document.
func JSONSchema() json.RawMessage {
	doc := toJSONSchema(ResponseSchema())
	doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	b, err := json.Marshal(doc)
	if err != nil {
		// map of strings, slices and nested maps only
		panic(fmt.Sprintf("types: marshal json schema: %v", err))
	}
	return b
}

func toJSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{}
	if t := jsonType(s.Type); t != "" {
		if s.Nullable {
			out["type"] = []string{t, "null"}
		} else {
			out["type"] = t
		}
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = append([]string(nil), s.Enum...)
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = toJSONSchema(p)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	return out
}

func jsonType(t genai.Type) string {
	switch t {
	case genai.TypeString:
		return "string"
	case genai.TypeNumber:
		return "number"
	case genai.TypeInteger:
		return "integer"
	case genai.TypeBoolean:
		return "boolean"
	case genai.TypeArray:
		return "array"
	case genai.TypeObject:
		return "object"
	default:
		return ""
	}
}
