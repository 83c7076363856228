package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := len(bundle.NamespaceMessages(BaseLocale, "core")); got == 0 {
		t.Fatal("expected en-US core namespace messages")
	}
}

func TestEmbeddedLocalesTranslateEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if missing := bundle.MissingKeys("pt-BR"); len(missing) != 0 {
		t.Fatalf("pt-BR missing keys: %v", missing)
	}
}

func TestDefaultRegistersPrinterMessages(t *testing.T) {
	_ = Default()
	p := message.NewPrinter(language.AmericanEnglish)
	if got := p.Sprintf("core.error.submit_failed", "HTTP error! status: 502"); got != "Failed to submit form: HTTP error! status: 502" {
		t.Fatalf("Sprintf() = %q", got)
	}
	pt := message.NewPrinter(language.BrazilianPortuguese)
	if got := pt.Sprintf("result.view_source"); got != "Ver fonte" {
		t.Fatalf("pt-BR Sprintf() = %q, want %q", got, "Ver fonte")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("fr-FR", "result.empty")
	if !ok || got != "Received an empty data set from the webhook." {
		t.Fatalf("Message() = %q, %v", got, ok)
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/curation.yaml"), `locale: "en-US"
namespace: "curation"
messages:
  "core.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/curation.yaml"), `locale: "en-US"
namespace: "curation"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "a.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
