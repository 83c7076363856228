package curation

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("curation", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.SessionMode != "marker" {
		t.Fatalf("SessionMode = %q, want %q", cfg.SessionMode, "marker")
	}
	if cfg.SessionDBPath != "curation-sessions.db" {
		t.Fatalf("SessionDBPath = %q, want %q", cfg.SessionDBPath, "curation-sessions.db")
	}
	if cfg.TrustForwardedProto {
		t.Fatalf("TrustForwardedProto = %t, want false", cfg.TrustForwardedProto)
	}
}

func TestParseConfigOverrideHTTPAddr(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("curation", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
}

func TestParseConfigOverrideWebhookURLs(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("curation", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-auth-webhook-url", "https://hooks.example.test/auth",
		"-curation-webhook-url", "https://hooks.example.test/curate",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.AuthWebhookURL != "https://hooks.example.test/auth" {
		t.Fatalf("AuthWebhookURL = %q", cfg.AuthWebhookURL)
	}
	if cfg.CurationWebhookURL != "https://hooks.example.test/curate" {
		t.Fatalf("CurationWebhookURL = %q", cfg.CurationWebhookURL)
	}
}

func TestParseConfigNormalizesSessionMode(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("curation", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-session-mode", " Signed "})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.SessionMode != "signed" {
		t.Fatalf("SessionMode = %q, want %q", cfg.SessionMode, "signed")
	}
}

func TestParseConfigRejectsUnknownSessionMode(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("curation", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-session-mode", "cookie"}); err == nil {
		t.Fatalf("expected session mode error")
	}
}

func TestRunRejectsMissingWebhooks(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", SessionMode: "marker"})
	if err == nil {
		t.Fatalf("expected init error")
	}
}
