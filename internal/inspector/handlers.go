package inspector

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *envelopeError `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &envelopeError{Code: code, Message: message}})
}

// Handler exposes the recorder and live store state over local HTTP.
// State and Metrics are snapshot functions supplied by the caller;
// Report streams a PDF summary when set.
type Handler struct {
	Recorder *Recorder
	State    func() map[string]any
	Metrics  func() map[string]any
	Report   func(w io.Writer) error
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{Recorder: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Route("/debug", func(r chi.Router) {
		r.Get("/pages", h.handleListPages)
		r.Route("/pages/{page}", func(r chi.Router) {
			r.Get("/", h.handlePageOutcomes)
			r.Delete("/", h.handleClearPage)
		})
		r.Get("/state", h.handleState)
		r.Get("/metrics", h.handleMetrics)
		r.Get("/report", h.handleReport)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleListPages(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]any{
		"active": h.Recorder.ActivePage(),
		"pages":  h.Recorder.Pages(),
	})
}

func (h *Handler) handlePageOutcomes(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	outcomes := h.Recorder.Outcomes(page)
	if len(outcomes) == 0 {
		fail(w, http.StatusNotFound, "not_found", "no outcomes recorded for page")
		return
	}
	success(w, map[string]any{"page": page, "outcomes": outcomes})
}

func (h *Handler) handleClearPage(w http.ResponseWriter, r *http.Request) {
	h.Recorder.Clear(chi.URLParam(r, "page"))
	success(w, map[string]string{"status": "cleared"})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if h.State == nil {
		fail(w, http.StatusNotFound, "not_found", "state snapshot is not wired")
		return
	}
	success(w, h.State())
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.Metrics == nil {
		fail(w, http.StatusNotFound, "not_found", "metrics are not wired")
		return
	}
	success(w, h.Metrics())
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if h.Report == nil {
		fail(w, http.StatusNotFound, "not_found", "report generation is not wired")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="hrsync-summary.pdf"`)
	if err := h.Report(w); err != nil {
		slog.Warn("report generation failed", "err", err)
	}
}
