package sessiontoken

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/storage/sqlite"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewSelectsMode(t *testing.T) {
	t.Parallel()

	m, err := New(Config{})
	if err != nil {
		t.Fatalf("New(default) error = %v", err)
	}
	if _, ok := m.(Marker); !ok {
		t.Fatalf("New(default) = %T, want Marker", m)
	}
	if _, err := New(Config{Mode: "cookie"}); err == nil {
		t.Fatal("expected unsupported mode error")
	}
	if _, err := New(Config{Mode: ModeSigned, Secret: "short"}); err == nil {
		t.Fatal("expected short secret error")
	}
	if _, err := New(Config{Mode: ModeStored}); err == nil {
		t.Fatal("expected missing store error")
	}
}

func TestMarkerIssuesOneForAnHour(t *testing.T) {
	t.Parallel()

	m, _ := New(Config{Mode: ModeMarker})
	tok, err := m.Issue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tok.Value != "1" || !tok.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("Issue() = %+v", tok)
	}
	if !m.Verify(context.Background(), "anything") {
		t.Fatal("marker mode should accept any non-empty value")
	}
	if m.Verify(context.Background(), " ") {
		t.Fatal("marker mode should reject blank values")
	}
}

func TestSignedRoundTripAndExpiry(t *testing.T) {
	t.Parallel()

	clock := testNow
	s, err := NewSigned([]byte(testSecret), time.Hour, func() time.Time { return clock })
	if err != nil {
		t.Fatalf("NewSigned() error = %v", err)
	}
	tok, err := s.Issue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if strings.Count(tok.Value, ".") != 2 {
		t.Fatalf("Issue() value = %q, want JWT", tok.Value)
	}
	if !s.Verify(context.Background(), tok.Value) {
		t.Fatal("expected fresh token to verify")
	}
	if s.Verify(context.Background(), "1") {
		t.Fatal("expected bare marker to be rejected in signed mode")
	}

	clock = testNow.Add(time.Hour + time.Second)
	if err := s.parse(tok.Value); !errors.Is(err, errTokenExpired) {
		t.Fatalf("parse(expired) = %v, want errTokenExpired", err)
	}
}

func TestSignedRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return testNow }
	a, _ := NewSigned([]byte(testSecret), time.Hour, now)
	b, _ := NewSigned([]byte(strings.Repeat("z", 32)), time.Hour, now)
	tok, err := a.Issue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if err := b.parse(tok.Value); !errors.Is(err, errTokenSignature) {
		t.Fatalf("parse(foreign) = %v, want errTokenSignature", err)
	}
}

func TestStoredRoundTripAndExpiry(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := testNow
	s, err := NewStored(store, time.Hour, func() time.Time { return clock })
	if err != nil {
		t.Fatalf("NewStored() error = %v", err)
	}
	tok, err := s.Issue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(tok.Value) != 26 {
		t.Fatalf("Issue() value = %q, want 26-character id", tok.Value)
	}
	if !s.Verify(context.Background(), tok.Value) {
		t.Fatal("expected stored token to verify")
	}
	if s.Verify(context.Background(), "1") {
		t.Fatal("expected marker value to be rejected in stored mode")
	}

	clock = testNow.Add(time.Hour)
	if s.Verify(context.Background(), tok.Value) {
		t.Fatal("expected expired stored token to be rejected")
	}
}
