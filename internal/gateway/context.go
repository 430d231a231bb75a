package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ContextResponse is the JSON response for GET /context/{requester}.
type ContextResponse struct {
	Requester      string `json:"requester"`
	Context        string `json:"context"`
	IsContinuation bool   `json:"is_continuation"`
	Truncated      bool   `json:"truncated,omitempty"`
	Records        int    `json:"records"`
	Blocks         int    `json:"blocks"`
	Skipped        int    `json:"skipped,omitempty"`
	UsedChars      int    `json:"used_chars"`
}

// handleContext returns an http.HandlerFunc for GET /context/{requester}.
// An optional "now" query parameter (RFC 3339) pins the assembly instant,
// which makes tier boundaries reproducible for debugging.
func (g *Gateway) handleContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester := chi.URLParam(r, "requester")
		if requester == "" {
			http.Error(w, "missing requester", http.StatusBadRequest)
			return
		}

		now := time.Now()
		if raw := r.URL.Query().Get("now"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "invalid now parameter: "+err.Error(), http.StatusBadRequest)
				return
			}
			now = parsed
		}

		result, err := g.assembler.Assemble(requester, now)
		if err != nil {
			g.metrics.RecordError()
			g.logger.Error("context assembly failed", "requester", requester, "error", err)
			http.Error(w, "assembly failed", http.StatusInternalServerError)
			return
		}
		g.metrics.RecordAssembly(result)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ContextResponse{
			Requester:      requester,
			Context:        result.Context,
			IsContinuation: result.IsContinuation,
			Truncated:      result.Truncated,
			Records:        result.Records,
			Blocks:         result.Blocks,
			Skipped:        result.Skipped,
			UsedChars:      result.UsedChars,
		})
	}
}
