// Package curation parses curation service flags and launches the service.
package curation

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/curation/internal/platform/cmd"
	"github.com/louisbranch/curation/internal/platform/config"
	"github.com/louisbranch/curation/internal/services/curation"
	"github.com/louisbranch/curation/internal/services/curation/sessiontoken"
)

// Config holds curation command configuration.
type Config struct {
	HTTPAddr            string `env:"CURATION_HTTP_ADDR" envDefault:"localhost:8090"`
	AuthWebhookURL      string `env:"CURATION_AUTH_WEBHOOK_URL"`
	CurationWebhookURL  string `env:"CURATION_WEBHOOK_URL"`
	SheetURL            string `env:"CURATION_SHEET_URL"`
	SessionMode         string `env:"CURATION_SESSION_MODE" envDefault:"marker"`
	SessionSecret       string `env:"CURATION_SESSION_SECRET"`
	SessionDBPath       string `env:"CURATION_SESSION_DB_PATH" envDefault:"curation-sessions.db"`
	TrustForwardedProto bool   `env:"CURATION_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AuthWebhookURL, "auth-webhook-url", cfg.AuthWebhookURL, "Authentication webhook URL")
	fs.StringVar(&cfg.CurationWebhookURL, "curation-webhook-url", cfg.CurationWebhookURL, "Curation webhook URL")
	fs.StringVar(&cfg.SheetURL, "sheet-url", cfg.SheetURL, "Reference sheet linked from the curation page")
	fs.StringVar(&cfg.SessionMode, "session-mode", cfg.SessionMode, "Session token mode: marker, signed or stored")
	fs.StringVar(&cfg.SessionDBPath, "session-db-path", cfg.SessionDBPath, "SQLite path for stored session tokens")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when deciding cookie security")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	mode, err := config.RequireOneOf("session mode", cfg.SessionMode,
		string(sessiontoken.ModeMarker), string(sessiontoken.ModeSigned), string(sessiontoken.ModeStored))
	if err != nil {
		return Config{}, err
	}
	cfg.SessionMode = mode
	return cfg, nil
}

// Run starts the curation web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCuration, func(ctx context.Context) error {
		server, err := curation.NewServer(ctx, curation.Config{
			HTTPAddr:            cfg.HTTPAddr,
			AuthWebhookURL:      cfg.AuthWebhookURL,
			CurationWebhookURL:  cfg.CurationWebhookURL,
			SheetURL:            cfg.SheetURL,
			SessionMode:         sessiontoken.Mode(cfg.SessionMode),
			SessionSecret:       cfg.SessionSecret,
			SessionDBPath:       cfg.SessionDBPath,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init curation server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve curation: %w", err)
		}
		return nil
	})
}
