package drafts

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/form"
	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"github.com/louisbranch/curation/internal/services/curation/result"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	return NewStore(time.Hour, clock.Now), clock
}

func TestCreateAndGetReturnCopies(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	d, err := store.Create(nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(d.ID) != 26 {
		t.Fatalf("Create() id = %q, want 26 characters", d.ID)
	}
	if d.Form.Len() != 1 {
		t.Fatalf("Form.Len() = %d, want 1", d.Form.Len())
	}

	d.Form.AddRow()
	got, ok := store.Get(d.ID)
	if !ok {
		t.Fatal("Get() missing draft")
	}
	if got.Form.Len() != 1 {
		t.Fatalf("stored Form.Len() = %d, want caller edits isolated", got.Form.Len())
	}
}

func TestUpdatePersistsEdits(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	d, _ := store.Create(form.New())
	_, err := store.Update(d.ID, func(f *form.Form) error {
		f.TestName = "MockRealTest_12th_31Aug"
		f.AddRow()
		return f.UpdateField(0, form.FieldClass, "12")
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := store.Get(d.ID)
	if got.Form.TestName != "MockRealTest_12th_31Aug" || got.Form.Len() != 2 || got.Form.Rows()[0].Class != "12" {
		t.Fatalf("Get() form = %+v rows=%+v", got.Form, got.Form.Rows())
	}

	_, err = store.Update(d.ID, func(f *form.Form) error {
		f.AddRow()
		return form.ErrUnknownField
	})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("Update() error = %v, want ErrUnknownField", err)
	}
	if got, _ := store.Get(d.ID); got.Form.Len() != 2 {
		t.Fatalf("failed edit applied: Len() = %d, want 2", got.Form.Len())
	}
}

func TestUpdateNeverReusesRowIDs(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	d, _ := store.Create(form.New())
	edits := []func(*form.Form) error{
		func(f *form.Form) error { f.AddRow(); f.AddRow(); return nil },
		func(f *form.Form) error { f.RemoveRow(2); return nil },
		func(f *form.Form) error { f.AddRow(); return nil },
	}
	for i, edit := range edits {
		if _, err := store.Update(d.ID, edit); err != nil {
			t.Fatalf("Update() edit %d error = %v", i, err)
		}
	}

	got, _ := store.Get(d.ID)
	var ids []int
	for _, row := range got.Form.Rows() {
		ids = append(ids, row.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 4 {
		t.Fatalf("row ids = %v, want [1 2 4]", ids)
	}
}

func TestBeginRejectsSecondSubmission(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	d, _ := store.Create(nil)
	req, err := store.Begin(d.ID)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if len(req.Questions) != 1 || req.Questions[0].ID != 1 {
		t.Fatalf("Begin() request = %+v", req)
	}

	_, err = store.Begin(d.ID)
	if !errors.Is(err, ErrSubmissionPending) {
		t.Fatalf("second Begin() error = %v, want ErrSubmissionPending", err)
	}
	if status := apperrors.HTTPStatus(err); status != http.StatusConflict {
		t.Fatalf("HTTPStatus() = %d, want %d", status, http.StatusConflict)
	}
	if _, err := store.Update(d.ID, nil); !errors.Is(err, ErrSubmissionPending) {
		t.Fatalf("Update() while pending error = %v, want ErrSubmissionPending", err)
	}
}

func TestFinishRecordsOutcome(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	d, _ := store.Create(nil)

	if _, err := store.Begin(d.ID); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	resp := result.Response{{ChapterName: []string{"Atoms"}}}
	got, err := store.Finish(d.ID, resp, "")
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if got.Pending || !got.Submitted || len(got.Response) != 1 || got.Failure != "" {
		t.Fatalf("Finish(success) = %+v", got)
	}

	if _, err := store.Begin(d.ID); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	mid, _ := store.Get(d.ID)
	if mid.Response != nil || mid.Submitted {
		t.Fatalf("Begin() did not clear previous result: %+v", mid)
	}
	got, _ = store.Finish(d.ID, resp, "HTTP error! status: 500")
	if got.Pending || got.Submitted || got.Response != nil || got.Failure != "HTTP error! status: 500" {
		t.Fatalf("Finish(failure) = %+v", got)
	}
}

func TestIdleDraftsExpire(t *testing.T) {
	t.Parallel()

	store, clock := newTestStore()
	stale, _ := store.Create(nil)
	clock.Advance(30 * time.Minute)
	fresh, _ := store.Create(nil)

	clock.Advance(45 * time.Minute)
	if removed := store.Prune(); removed != 1 {
		t.Fatalf("Prune() = %d, want 1", removed)
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Fatal("expected stale draft to expire")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatal("expected fresh draft to survive")
	}
	if _, err := store.Begin(stale.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Begin(expired) error = %v, want ErrNotFound", err)
	}
}

func TestPendingDraftsDoNotExpire(t *testing.T) {
	t.Parallel()

	store, clock := newTestStore()
	d, _ := store.Create(nil)
	if _, err := store.Begin(d.ID); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	clock.Advance(2 * time.Hour)
	store.Prune()
	if _, err := store.Finish(d.ID, nil, ""); err != nil {
		t.Fatalf("Finish() after long submission error = %v", err)
	}
}
