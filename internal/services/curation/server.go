// Package curation hosts the browser-facing curation service.
package curation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/curation/internal/platform/timeouts"
	"github.com/louisbranch/curation/internal/services/curation/app"
	"github.com/louisbranch/curation/internal/services/curation/drafts"
	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/modules"
	"github.com/louisbranch/curation/internal/services/curation/platform/authctx"
	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	"github.com/louisbranch/curation/internal/services/curation/platform/observability"
	"github.com/louisbranch/curation/internal/services/curation/platform/requestmeta"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
	"github.com/louisbranch/curation/internal/services/curation/sessiontoken"
	curationstatic "github.com/louisbranch/curation/internal/services/curation/static"
	"github.com/louisbranch/curation/internal/services/curation/storage/sqlite"
	"github.com/louisbranch/curation/internal/services/curation/syllabus"
	"github.com/louisbranch/curation/internal/services/curation/webhook"
)

// Config defines startup inputs for the curation service.
type Config struct {
	HTTPAddr            string
	AuthWebhookURL      string
	CurationWebhookURL  string
	SheetURL            string
	SessionMode         sessiontoken.Mode
	SessionSecret       string
	SessionDBPath       string
	TrustForwardedProto bool
	// HTTPClient is used for webhook calls. Nil means a client without a
	// timeout.
	HTTPClient *http.Client
}

// Server hosts the curation HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	drafts     *drafts.Store
	store      *sqlite.Store
	stored     *sessiontoken.Stored
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(deps module.Dependencies) (http.Handler, error) {
	h, err := app.Compose(app.Config{
		Dependencies:     deps,
		PublicModules:    modules.DefaultPublicModules(),
		ProtectedModules: modules.DefaultProtectedModules(),
	})
	if err != nil {
		return nil, err
	}
	assets := http.FileServer(http.FS(curationstatic.FS))
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, assets))
	rootMux.Handle(routepath.AssetsPrefix, http.StripPrefix(routepath.AssetsPrefix, assets))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(log.Default()),
	), nil
}

// NewServer validates config, opens session storage when needed, and
// constructs a server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(cfg.AuthWebhookURL) == "" {
		return nil, errors.New("auth webhook url is required")
	}
	if strings.TrimSpace(cfg.CurationWebhookURL) == "" {
		return nil, errors.New("curation webhook url is required")
	}

	srv := &Server{httpAddr: httpAddr, drafts: drafts.NewStore(drafts.DefaultIdleTTL, nil)}
	sessions, err := srv.openSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := module.Dependencies{
		IsAuthorized:       authctx.FromCookie(sessions.Verify),
		Sessions:           sessions,
		Webhook:            webhook.NewClient(cfg.HTTPClient),
		Drafts:             srv.drafts,
		Syllabus:           syllabus.Default(),
		AuthWebhookURL:     strings.TrimSpace(cfg.AuthWebhookURL),
		CurationWebhookURL: strings.TrimSpace(cfg.CurationWebhookURL),
		SheetURL:           strings.TrimSpace(cfg.SheetURL),
		SchemePolicy:       requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Now:                time.Now,
	}
	handler, err := NewHandler(deps)
	if err != nil {
		srv.Close()
		return nil, fmt.Errorf("compose curation handler: %w", err)
	}
	srv.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return srv, nil
}

func (s *Server) openSessions(ctx context.Context, cfg Config) (sessiontoken.Manager, error) {
	if cfg.SessionMode != sessiontoken.ModeStored {
		return sessiontoken.New(sessiontoken.Config{Mode: cfg.SessionMode, Secret: cfg.SessionSecret})
	}
	store, err := sqlite.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	sessions, err := sessiontoken.New(sessiontoken.Config{Mode: sessiontoken.ModeStored, Store: store})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	s.store = store
	s.stored, _ = sessions.(*sessiontoken.Stored)
	return sessions, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("curation server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweeps := context.WithCancel(ctx)
	defer stopSweeps()
	go s.sweepDrafts(sweepCtx)
	if s.stored != nil {
		go s.stored.Sweep(sweepCtx, timeouts.SessionSweep)
	}

	log.Printf("curation listening addr=%s", s.httpAddr)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown curation http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve curation http: %w", err)
	}
}

func (s *Server) sweepDrafts(ctx context.Context) {
	ticker := time.NewTicker(timeouts.SessionSweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.drafts.Prune(); n > 0 {
				log.Printf("draft sweep removed=%d", n)
			}
		}
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close session store: %v", err)
		}
		s.store = nil
	}
}
