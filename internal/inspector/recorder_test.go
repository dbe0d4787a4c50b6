package inspector

import (
	"fmt"
	"testing"
	"time"

	"hrsync/internal/api"
)

func errServerConflict() *api.Error {
	return &api.Error{Kind: api.KindServer, Status: 409, Message: "Advance already pending"}
}

func TestRecorderKeepsLastTenPerPage(t *testing.T) {
	r := NewRecorder()
	r.SetActivePage("personnel")

	for i := 1; i <= 12; i++ {
		r.RecordCall("GET", fmt.Sprintf("/employees?page=%d", i), 200, "", nil, 12*time.Millisecond)
	}

	outcomes := r.Outcomes("personnel")
	if len(outcomes) != 10 {
		t.Fatalf("expected 10 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Path != "/employees?page=3" {
		t.Fatalf("oldest retained outcome should be call 3, got %s", outcomes[0].Path)
	}
	if outcomes[9].Path != "/employees?page=12" {
		t.Fatalf("newest outcome should be call 12, got %s", outcomes[9].Path)
	}
}

func TestRecorderFilesUnderActivePage(t *testing.T) {
	r := NewRecorder()

	r.SetActivePage("personnel")
	r.RecordCall("GET", "/employees", 200, "req-1", nil, time.Millisecond)

	r.SetActivePage("leaves")
	r.RecordCall("POST", "/employees/u1/leaves", 201, "req-2", nil, time.Millisecond)

	if got := len(r.Outcomes("personnel")); got != 1 {
		t.Fatalf("personnel should hold 1 outcome, got %d", got)
	}
	if got := len(r.Outcomes("leaves")); got != 1 {
		t.Fatalf("leaves should hold 1 outcome, got %d", got)
	}
	if got := r.ActivePage(); got != "leaves" {
		t.Fatalf("active page should be leaves, got %s", got)
	}
	if pages := r.Pages(); len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %v", pages)
	}
}

func TestRecorderCapturesErrorDetails(t *testing.T) {
	r := NewRecorder()
	r.SetActivePage("advances")

	r.RecordCall("POST", "/employees/u1/advances", 409, "req-9",
		fmt.Errorf("wrapped: %w", errServerConflict()), 5*time.Millisecond)

	outcomes := r.Outcomes("advances")
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	got := outcomes[0]
	if got.OK {
		t.Fatal("failed call must not be marked ok")
	}
	if got.Kind != "server" {
		t.Fatalf("expected server kind, got %q", got.Kind)
	}
	if got.Message != "Advance already pending" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
	if got.At.IsZero() {
		t.Fatal("outcome must be timestamped")
	}
}

func TestRecorderClear(t *testing.T) {
	r := NewRecorder()
	r.SetActivePage("personnel")
	r.RecordCall("GET", "/employees", 200, "", nil, time.Millisecond)
	r.SetActivePage("leaves")
	r.RecordCall("GET", "/employees/u1/leaves", 200, "", nil, time.Millisecond)

	r.Clear("personnel")
	if len(r.Outcomes("personnel")) != 0 {
		t.Fatal("cleared page should be empty")
	}
	if len(r.Outcomes("leaves")) != 1 {
		t.Fatal("other pages must be untouched")
	}

	r.Clear("")
	if len(r.Pages()) != 0 {
		t.Fatal("clearing all should drop every page")
	}
}
