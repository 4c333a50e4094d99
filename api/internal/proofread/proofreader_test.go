package proofread

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"reflect"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"proofreader/api/internal/metrics"
	"proofreader/api/internal/proofread/engine"
	"proofreader/api/internal/proofread/prompt"
	"proofreader/api/internal/proofread/types"
)

type fakeEngine struct {
	name string
	raw  string
	err  error

	mu    sync.Mutex
	calls []prompt.Request
}

func (f *fakeEngine) Name() string  { return f.name }
func (f *fakeEngine) Model() string { return f.name + "-model" }

func (f *fakeEngine) Generate(ctx context.Context, req prompt.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.raw, f.err
}

type captureRecorder struct {
	mu       sync.Mutex
	failures []Failure
	err      error
}

func (c *captureRecorder) RecordFailure(_ context.Context, f Failure) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, f)
	return c.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProofreader(eng engine.Engine, rec Recorder) *Proofreader {
	return New(engine.NewEngines(eng), WithRecorder(rec), WithLogger(quietLogger()))
}

func TestProofreadReturnsValidated(t *testing.T) {
	eng := &fakeEngine{name: "fake-a", raw: homophoneRaw}
	p := newTestProofreader(eng, nil)

	before := testutil.ToFloat64(metrics.ProofreadTotal.WithLabelValues("fake-a", "ok"))
	got, err := p.Proofread(context.Background(), homophoneInput)
	if err != nil {
		t.Fatalf("Proofread: %v", err)
	}
	if len(got.Corrections) != 2 {
		t.Fatalf("corrections = %d, want 2", len(got.Corrections))
	}
	if len(eng.calls) != 1 {
		t.Fatalf("upstream calls = %d, want exactly 1", len(eng.calls))
	}
	if eng.calls[0].UserText != homophoneInput {
		t.Errorf("UserText = %q", eng.calls[0].UserText)
	}
	if after := testutil.ToFloat64(metrics.ProofreadTotal.WithLabelValues("fake-a", "ok")); after != before+1 {
		t.Errorf("ok counter = %v, want %v", after, before+1)
	}
}

func TestProofreadConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	_, dialErr := net.Dial("tcp", addr)
	if dialErr == nil {
		t.Skip("port unexpectedly accepted a connection")
	}

	input := "Their going too the store."
	orig := input
	eng := &fakeEngine{name: "fake-e", err: dialErr}
	rec := &captureRecorder{}
	p := newTestProofreader(eng, rec)

	got, err := p.Proofread(context.Background(), input)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if errors.Is(err, ErrMalformedOutput) || errors.Is(err, ErrBounds) {
		t.Error("upstream failure matched a validation kind")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Engine != "fake-e" {
		t.Errorf("err = %#v", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("transport error not preserved: %v", err)
	}
	if !reflect.DeepEqual(got, types.Proofreading{}) {
		t.Errorf("partial result: %+v", got)
	}
	if input != orig {
		t.Error("input modified")
	}
	if len(rec.failures) != 0 {
		t.Errorf("upstream failures must not be recorded as rejected output: %+v", rec.failures)
	}
}

func TestProofreadEmptyResponseIsUpstream(t *testing.T) {
	eng := &fakeEngine{name: "fake-empty", err: engine.ErrEmptyResponse}
	p := newTestProofreader(eng, nil)
	_, err := p.Proofread(context.Background(), "text")
	if !errors.Is(err, ErrUpstream) || !errors.Is(err, engine.ErrEmptyResponse) {
		t.Fatalf("err = %v", err)
	}
}

func TestProofreadCancelledContext(t *testing.T) {
	eng := &fakeEngine{name: "fake-cancel", raw: homophoneRaw}
	p := newTestProofreader(eng, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := p.Proofread(ctx, homophoneInput)
	if !errors.Is(err, ErrUpstream) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want upstream wrapping context.Canceled", err)
	}
	if got.Corrections != nil || got.Corrected != "" {
		t.Errorf("partial result: %+v", got)
	}
}

func TestProofreadRecordsRejectedOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind string
		want error
	}{
		{"missing corrections", `{"corrected":"ok"}`, KindMalformedOutput, ErrMalformedOutput},
		{"unknown type", `{"corrected":"x","corrections":[{"startIndex":0,"endIndex":0,"correction":"y","type":"style","explanation":"e"}]}`, KindMalformedOutput, ErrMalformedOutput},
		{"span past end", `{"corrected":"x","corrections":[{"startIndex":50,"endIndex":50,"correction":"y","type":"grammar","explanation":"e"}]}`, KindBounds, ErrBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &captureRecorder{}
			p := newTestProofreader(&fakeEngine{name: "fake-rec", raw: tt.raw}, rec)

			_, err := p.Proofread(context.Background(), "0123456789")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(rec.failures) != 1 {
				t.Fatalf("recorded %d failures, want 1", len(rec.failures))
			}
			f := rec.failures[0]
			if f.Kind != tt.kind || f.RawOutput != tt.raw || f.Input != "0123456789" || f.Engine != "fake-rec" {
				t.Errorf("failure = %+v", f)
			}
		})
	}
}

func TestProofreadRecorderErrorDoesNotChangeOutcome(t *testing.T) {
	rec := &captureRecorder{err: errors.New("db down")}
	p := newTestProofreader(&fakeEngine{name: "fake-recerr", raw: `{"corrected":"ok"}`}, rec)
	_, err := p.Proofread(context.Background(), "text")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("err = %v, want ErrMalformedOutput", err)
	}
}

func TestProofreadUnknownEngine(t *testing.T) {
	p := newTestProofreader(&fakeEngine{name: "fake"}, nil)
	_, err := p.ProofreadWith(context.Background(), "nope", "text")
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}

func TestProofreadConcurrent(t *testing.T) {
	eng := &fakeEngine{name: "fake-conc", raw: homophoneRaw}
	p := newTestProofreader(eng, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Proofread(context.Background(), homophoneInput); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	if len(eng.calls) != 20 {
		t.Errorf("calls = %d, want 20", len(eng.calls))
	}
}
