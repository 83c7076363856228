// Package drafts keeps in-progress curation forms between requests.
package drafts

import (
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/curation/internal/platform/id"
	"github.com/louisbranch/curation/internal/services/curation/form"
	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"github.com/louisbranch/curation/internal/services/curation/result"
)

// DefaultIdleTTL is how long an untouched draft is kept.
const DefaultIdleTTL = time.Hour

var (
	// ErrSubmissionPending is returned by Begin while a submission is in flight.
	ErrSubmissionPending = errors.New("submission already pending")
	// ErrNotFound is returned for unknown or expired draft ids.
	ErrNotFound = errors.New("draft not found")
)

// Draft is a snapshot of one form and its submission state.
type Draft struct {
	ID       string
	Form     *form.Form
	Pending  bool
	Failure  string
	Response result.Response
	// Submitted is set once a submission has completed successfully.
	Submitted bool
}

type entry struct {
	draft   Draft
	touched time.Time
}

// Store holds drafts in memory keyed by id.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore builds a Store that forgets drafts idle for longer than ttl.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Store{entries: make(map[string]*entry), ttl: ttl, now: now}
}

// Create stores f under a fresh id and returns the new draft.
func (s *Store) Create(f *form.Form) (Draft, error) {
	draftID, err := id.NewID()
	if err != nil {
		return Draft{}, err
	}
	if f == nil {
		f = form.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	d := Draft{ID: draftID, Form: cloneForm(f)}
	s.entries[draftID] = &entry{draft: d, touched: now}
	return clone(d), nil
}

// Get returns a copy of the draft with id.
func (s *Store) Get(draftID string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveLocked(draftID)
	if !ok {
		return Draft{}, false
	}
	return clone(e.draft), true
}

// Update applies edit to the stored form. Edits are rejected while a
// submission is pending.
func (s *Store) Update(draftID string, edit func(*form.Form) error) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveLocked(draftID)
	if !ok {
		return Draft{}, notFound()
	}
	if e.draft.Pending {
		return clone(e.draft), pending()
	}
	f := cloneForm(e.draft.Form)
	if edit != nil {
		if err := edit(f); err != nil {
			return clone(e.draft), err
		}
	}
	e.draft.Form = f
	return clone(e.draft), nil
}

// Begin marks the draft pending, clears the previous failure and response,
// and returns the request to send.
func (s *Store) Begin(draftID string) (form.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveLocked(draftID)
	if !ok {
		return form.Request{}, notFound()
	}
	if e.draft.Pending {
		return form.Request{}, pending()
	}
	e.draft.Pending = true
	e.draft.Failure = ""
	e.draft.Response = nil
	e.draft.Submitted = false
	return e.draft.Form.Request(), nil
}

// Finish clears the pending flag and records the outcome. A non-empty
// failure discards resp.
func (s *Store) Finish(draftID string, resp result.Response, failure string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[draftID]
	if !ok {
		return Draft{}, notFound()
	}
	e.touched = s.now()
	e.draft.Pending = false
	if failure != "" {
		e.draft.Failure = failure
		e.draft.Response = nil
		e.draft.Submitted = false
	} else {
		e.draft.Failure = ""
		e.draft.Response = resp
		e.draft.Submitted = true
	}
	return clone(e.draft), nil
}

// Prune removes drafts idle past the ttl and returns how many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.now())
}

// Len returns the number of stored drafts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) liveLocked(draftID string) (*entry, bool) {
	e, ok := s.entries[draftID]
	if !ok {
		return nil, false
	}
	now := s.now()
	if !e.draft.Pending && now.Sub(e.touched) > s.ttl {
		delete(s.entries, draftID)
		return nil, false
	}
	e.touched = now
	return e, true
}

func (s *Store) pruneLocked(now time.Time) int {
	removed := 0
	for key, e := range s.entries {
		if e.draft.Pending {
			continue
		}
		if now.Sub(e.touched) > s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func clone(d Draft) Draft {
	d.Form = cloneForm(d.Form)
	if d.Response != nil {
		d.Response = append(result.Response(nil), d.Response...)
	}
	return d
}

func cloneForm(f *form.Form) *form.Form {
	if f == nil {
		return form.New()
	}
	return f.Clone()
}

func notFound() error {
	return apperrors.Wrap(apperrors.KindNotFound, "core.error.not_found", ErrNotFound)
}

func pending() error {
	return apperrors.Wrap(apperrors.KindConflict, "core.error.submission_pending", ErrSubmissionPending)
}
