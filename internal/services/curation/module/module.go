// Package module defines the contract between feature modules and the root
// handler composition.
package module

import (
	"net/http"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/drafts"
	"github.com/louisbranch/curation/internal/services/curation/platform/authctx"
	"github.com/louisbranch/curation/internal/services/curation/platform/requestmeta"
	"github.com/louisbranch/curation/internal/services/curation/sessiontoken"
	"github.com/louisbranch/curation/internal/services/curation/syllabus"
	"github.com/louisbranch/curation/internal/services/curation/webhook"
)

// Dependencies carries the shared runtime collaborators handed to modules.
type Dependencies struct {
	// IsAuthorized is the single session predicate used by the guard and by
	// protected handlers.
	IsAuthorized authctx.IsAuthorized
	Sessions     sessiontoken.Manager
	Webhook      webhook.Poster
	Drafts       *drafts.Store
	Syllabus     syllabus.Syllabus

	AuthWebhookURL     string
	CurationWebhookURL string
	SheetURL           string

	SchemePolicy requestmeta.SchemePolicy
	Now          func() time.Time
}

// Mount is the module's route prefix and handler.
type Mount struct {
	Prefix  string
	Handler http.Handler
	// Exact additionally mounts Prefix without its trailing slash.
	Exact bool
}

// Module is one mountable feature area.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
