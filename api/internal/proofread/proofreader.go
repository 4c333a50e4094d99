// Package proofread runs the proofreading pipeline: compose the request,
// dispatch it to one upstream engine, then decode and validate the output.
package proofread

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"proofreader/api/internal/metrics"
	"proofreader/api/internal/proofread/engine"
	"proofreader/api/internal/proofread/prompt"
	"proofreader/api/internal/proofread/types"
)

const recordTimeout = 3 * time.Second

// Failure is what gets retained for a rejected model output.
type Failure struct {
	Engine    string
	Model     string
	Kind      string
	Input     string
	RawOutput string
	Error     string
}

// Recorder persists rejected outputs for diagnostics.
type Recorder interface {
	RecordFailure(ctx context.Context, f Failure) error
}

type nopRecorder struct{}

func (nopRecorder) RecordFailure(context.Context, Failure) error { return nil }

type Proofreader struct {
	engs *engine.Engines
	rec  Recorder
	log  *slog.Logger
}

type Option func(*Proofreader)

func WithRecorder(r Recorder) Option {
	return func(p *Proofreader) {
		if r != nil {
			p.rec = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Proofreader) {
		if l != nil {
			p.log = l
		}
	}
}

func New(engs *engine.Engines, opts ...Option) *Proofreader {
	p := &Proofreader{engs: engs, rec: nopRecorder{}, log: slog.Default()}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Proofreader) Engines() *engine.Engines { return p.engs }

// Proofread runs input through the default engine.
func (p *Proofreader) Proofread(ctx context.Context, input string) (types.Proofreading, error) {
	return p.ProofreadWith(ctx, "", input)
}

// ProofreadWith runs input through the named engine. The returned value is
// either fully validated or the zero value with a non-nil error.
func (p *Proofreader) ProofreadWith(ctx context.Context, llmName, input string) (types.Proofreading, error) {
	eng, err := p.engs.GetEngine(llmName)
	if err != nil {
		return types.Proofreading{}, errors.Join(ErrConfig, err)
	}
	metrics.InputChars.Observe(float64(types.Length(input)))

	req := prompt.Compose(input)

	start := time.Now()
	raw, err := eng.Generate(ctx, req)
	metrics.UpstreamDuration.WithLabelValues(eng.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProofreadTotal.WithLabelValues(eng.Name(), KindUpstream).Inc()
		p.log.WarnContext(ctx, "proofread: upstream failure",
			"engine", eng.Name(), "model", eng.Model(), "err", err)
		return types.Proofreading{}, &UpstreamError{Engine: eng.Name(), Err: err}
	}

	out, err := Parse(raw, input)
	if err != nil {
		kind := Kind(err)
		metrics.ProofreadTotal.WithLabelValues(eng.Name(), kind).Inc()
		p.log.WarnContext(ctx, "proofread: rejected model output",
			"engine", eng.Name(), "model", eng.Model(), "kind", kind, "err", err, "raw", raw)
		p.record(ctx, Failure{
			Engine:    eng.Name(),
			Model:     eng.Model(),
			Kind:      kind,
			Input:     input,
			RawOutput: raw,
			Error:     err.Error(),
		})
		return types.Proofreading{}, err
	}

	metrics.ProofreadTotal.WithLabelValues(eng.Name(), "ok").Inc()
	metrics.Corrections.Observe(float64(len(out.Corrections)))
	p.log.DebugContext(ctx, "proofread: ok",
		"engine", eng.Name(), "corrections", len(out.Corrections), "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

// record never affects the request outcome.
func (p *Proofreader) record(ctx context.Context, f Failure) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := p.rec.RecordFailure(rctx, f); err != nil {
		p.log.ErrorContext(ctx, "proofread: record failure", "kind", f.Kind, "err", err)
	}
}
