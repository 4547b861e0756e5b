package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/pptxdom/internal/deck"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	edits := []deck.Edit{{Op: deck.OpSetNodeText, Slide: 1}, {Op: deck.OpRelabelCategories, Slide: 2}}
	job := NewJob("deck.pptx", []byte("hello world"), edits)

	if job.ID == "" {
		t.Fatal("expected job ID")
	}
	if other := NewJob("deck.pptx", nil, nil); other.ID == job.ID {
		t.Error("expected unique job IDs")
	}
	snap := job.Snapshot()
	if snap.Status != StatusQueued || snap.Progress.TotalEdits != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.ContentHash != ContentHashHex([]byte("hello world")) {
		t.Errorf("unexpected content hash %q", snap.ContentHash)
	}
	if len(job.Edits()) != 2 || string(job.FileData()) != "hello world" {
		t.Error("expected edits and file data to be kept")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("deck.pptx", nil, nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusOpening, "opening"},
		{StatusApplying, "applying"},
		{StatusSaving, "saving"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Done(t *testing.T) {
	for _, s := range []JobStatus{StatusCompleted, StatusFailed, StatusPartial} {
		if !s.Done() {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	for _, s := range []JobStatus{StatusQueued, StatusOpening, StatusApplying, StatusSaving} {
		if s.Done() {
			t.Errorf("expected %q not to be terminal", s)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("edit 0 failed")
	job.AddError("edit 2 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "edit 0 failed" {
		t.Errorf("expected first error %q, got %q", "edit 0 failed", snap.Progress.Errors[0])
	}
}

func TestJob_IncrEditsApplied(t *testing.T) {
	job := &Job{ID: "incr-test", UpdatedAt: time.Now()}
	job.IncrEditsApplied()
	job.IncrEditsApplied()

	snap := job.Snapshot()
	if snap.Progress.EditsApplied != 2 {
		t.Errorf("expected 2 edits applied, got %d", snap.Progress.EditsApplied)
	}
}

func TestJob_SetResultReleasesUpload(t *testing.T) {
	job := NewJob("deck.pptx", []byte("upload"), nil)
	job.SetResult([]byte("edited"))

	if string(job.Result()) != "edited" {
		t.Errorf("expected result %q, got %q", "edited", job.Result())
	}
	if job.FileData() != nil {
		t.Error("expected upload to be released")
	}
	if job.Snapshot().ResultBytes != len("edited") {
		t.Errorf("expected result size in snapshot, got %d", job.Snapshot().ResultBytes)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJob_SnapshotJSONAndCopy(t *testing.T) {
	job := NewJob("a.pptx", []byte("x"), nil)
	b, err := json.Marshal(job.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"errors":[]`) {
		t.Errorf("expected empty errors array, got %s", b)
	}

	job.AddError("edit 0 failed")
	snap := job.Snapshot()
	snap.Progress.Errors[0] = "changed"
	if got := job.Snapshot().Progress.Errors[0]; got != "edit 0 failed" {
		t.Errorf("expected snapshot to hold a copy, got %q", got)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
