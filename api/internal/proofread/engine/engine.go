// Package engine defines the model dispatcher contract and the registry of
// configured upstream engines.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"proofreader/api/internal/proofread/prompt"
)

// ErrEmptyResponse is returned when the upstream produced no candidate text.
var ErrEmptyResponse = errors.New("empty response")

// Engine executes one composed request against an upstream model and returns
// the primary candidate's raw text. Implementations must be safe for
// concurrent use and perform exactly one upstream call per Generate.
type Engine interface {
	Name() string
	Model() string
	Generate(ctx context.Context, req prompt.Request) (string, error)
}

// Engines is the set of engines available to the service.
type Engines struct {
	Default string
	byName  map[string]Engine
}

func NewEngines(def Engine, more ...Engine) *Engines {
	e := &Engines{byName: map[string]Engine{}}
	if def != nil {
		e.Default = def.Name()
		e.byName[def.Name()] = def
	}
	for _, m := range more {
		if m != nil {
			e.byName[m.Name()] = m
		}
	}
	return e
}

// GetEngine resolves an engine by name; the empty name selects the default.
func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := strings.ToLower(strings.TrimSpace(llmName))
	switch name {
	case "":
		name = e.Default
	case "gpt":
		name = "openai"
	}
	if eng, ok := e.byName[name]; ok {
		return eng, nil
	}
	return nil, fmt.Errorf("unknown llm_name %q; available: %s", llmName, strings.Join(e.Names(), ", "))
}

// Names lists configured engine names, sorted.
func (e *Engines) Names() []string {
	out := make([]string, 0, len(e.byName))
	for k := range e.byName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
