package handle

import (
	"context"
	"net/http"
	"time"

	"proofreader/api/internal/proofread/types"
)

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Schema serves the structured output contract as a JSON Schema document.
func (h *Handle) Schema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(types.JSONSchema())
}

type engineInfo struct {
	Name    string `json:"name"`
	Model   string `json:"model"`
	Default bool   `json:"default"`
}

func (h *Handle) Engines(w http.ResponseWriter, r *http.Request) {
	engs := h.pr.Engines()
	out := make([]engineInfo, 0, len(engs.Names()))
	for _, name := range engs.Names() {
		e, err := engs.GetEngine(name)
		if err != nil {
			continue
		}
		out = append(out, engineInfo{Name: e.Name(), Model: e.Model(), Default: name == engs.Default})
	}
	writeJSON(w, http.StatusOK, out)
}
