// Package inspector keeps a bounded trail of recent API call outcomes,
// grouped by the page that triggered them, for local debugging.
package inspector

import (
	"errors"
	"sync"
	"time"

	"hrsync/internal/api"
)

// maxOutcomes bounds how many outcomes are retained per page. Older
// entries are discarded as new ones arrive.
const maxOutcomes = 10

// Outcome is one recorded API call.
type Outcome struct {
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	OK        bool      `json:"ok"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message,omitempty"`
	ElapsedMs int64     `json:"elapsedMs"`
	At        time.Time `json:"at"`
}

// Recorder implements api.CallLog. Calls are filed under the page that
// is active at record time.
type Recorder struct {
	mu     sync.Mutex
	active string
	pages  map[string][]Outcome
}

func NewRecorder() *Recorder {
	return &Recorder{
		active: "unknown",
		pages:  make(map[string][]Outcome),
	}
}

// SetActivePage marks which page subsequent outcomes belong to.
func (r *Recorder) SetActivePage(page string) {
	if page == "" {
		page = "unknown"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = page
}

func (r *Recorder) ActivePage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Recorder) RecordCall(method, path string, status int, requestID string, callErr error, elapsed time.Duration) {
	outcome := Outcome{
		Method:    method,
		Path:      path,
		Status:    status,
		RequestID: requestID,
		OK:        callErr == nil,
		ElapsedMs: elapsed.Milliseconds(),
		At:        time.Now(),
	}
	var apiErr *api.Error
	if errors.As(callErr, &apiErr) {
		outcome.Kind = apiErr.Kind.String()
		outcome.Message = apiErr.Message
	} else if callErr != nil {
		outcome.Message = callErr.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entries := append(r.pages[r.active], outcome)
	if len(entries) > maxOutcomes {
		entries = entries[len(entries)-maxOutcomes:]
	}
	r.pages[r.active] = entries
}

// Outcomes returns the retained outcomes for a page, oldest first.
func (r *Recorder) Outcomes(page string) []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.pages[page]
	out := make([]Outcome, len(entries))
	copy(out, entries)
	return out
}

// Pages lists every page that has at least one recorded outcome.
func (r *Recorder) Pages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	pages := make([]string, 0, len(r.pages))
	for page := range r.pages {
		pages = append(pages, page)
	}
	return pages
}

// Clear drops the outcomes for one page, or all pages when page is empty.
func (r *Recorder) Clear(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page == "" {
		r.pages = make(map[string][]Outcome)
		return
	}
	delete(r.pages, page)
}
