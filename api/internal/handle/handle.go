package handle

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"proofreader/api/internal/proofread"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handle struct {
	pr           *proofread.Proofreader
	timeout      time.Duration
	maxBodyBytes int64
	db           Pinger
	log          *slog.Logger
}

type Options struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	// DB is optional; when set /healthz pings it.
	DB     Pinger
	Logger *slog.Logger
}

func New(pr *proofread.Proofreader, opt Options) *Handle {
	h := &Handle{
		pr:           pr,
		timeout:      opt.Timeout,
		maxBodyBytes: opt.MaxBodyBytes,
		db:           opt.DB,
		log:          opt.Logger,
	}
	if h.timeout <= 0 {
		h.timeout = 120 * time.Second
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = 1 << 20
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind, msg string) {
	writeJSON(w, code, errorResponse{Error: msg, Kind: kind})
}
