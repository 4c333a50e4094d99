package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"proofreader/api/internal/proofread"
)

type proofreadReq struct {
	Input   string `json:"input"`
	LLMName string `json:"llm_name"`
}

// Proofread handles POST {"input": "..."} and returns the validated
// Proofreading document.
func (h *Handle) Proofread(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "", "POST only")
		return
	}

	var req proofreadReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "", "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, http.StatusBadRequest, "", "input is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deadline(r))
	defer cancel()

	out, err := h.pr.ProofreadWith(ctx, req.LLMName, req.Input)
	if err != nil {
		code := statusFor(err)
		kind := proofread.Kind(err)
		h.log.WarnContext(r.Context(), "proofread failed", "kind", kind, "status", code, "err", err)
		writeError(w, code, kind, "proofread error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// deadline honours X-Request-Timeout (seconds) or ?timeoutSec=, else the
// configured default.
func (h *Handle) deadline(r *http.Request) time.Duration {
	for _, ts := range []string{r.Header.Get("X-Request-Timeout"), r.URL.Query().Get("timeoutSec")} {
		if ts == "" {
			continue
		}
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return h.timeout
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, proofread.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, proofread.ErrUpstream) && errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, proofread.ErrUpstream),
		errors.Is(err, proofread.ErrMalformedOutput),
		errors.Is(err, proofread.ErrBounds):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
