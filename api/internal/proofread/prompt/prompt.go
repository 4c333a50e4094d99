// Package prompt composes the outbound generation request for a proofreading
// call. Composition is pure: no I/O, no shared state.
package prompt

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"

	"proofreader/api/internal/proofread/types"
)

const ResponseMIMEType = "application/json"

// SystemInstruction is sent unchanged with every request.
const SystemInstruction = `You are an expert proofreader. Analyze the provided text and identify every correction needed to fix grammar or spelling.
For each mistake report:
- startIndex: the index of the FIRST character of the error in the ORIGINAL text;
- endIndex: the index of the LAST character of the error in the ORIGINAL text;
- type: one of spelling, punctuation, capitalization, preposition, missing-words, grammar;
- correction: the replacement text for that span;
- explanation: a short human-readable reason.
Indexes are 0-based and count Unicode characters, not bytes. endIndex is inclusive.
It is CRITICAL that startIndex and endIndex exactly bound the erroneous span in the original text as it was given to you.
Count characters carefully; a wrong index makes the whole answer unusable.
Finally, provide the entire corrected text in "corrected".
Return only JSON matching the response schema.`

// Request is everything an engine needs to run one proofreading call.
type Request struct {
	SystemInstruction string
	UserText          string
	ResponseMIMEType  string
	Schema            *genai.Schema
	JSONSchema        json.RawMessage
}

// Compose builds the request for input. The input is passed through verbatim.
func Compose(input string) Request {
	return Request{
		SystemInstruction: SystemInstruction,
		UserText:          input,
		ResponseMIMEType:  ResponseMIMEType,
		Schema:            types.ResponseSchema(),
		JSONSchema:        types.JSONSchema(),
	}
}
