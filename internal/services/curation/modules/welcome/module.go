// Package welcome serves the protected curation form.
package welcome

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
)

// Module serves the curation page and its form actions.
type Module struct{}

// New returns the welcome module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "welcome" }

// Mount wires the curation routes under /welcome.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Drafts == nil {
		return module.Mount{}, errors.New("draft store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return module.Mount{Prefix: routepath.WelcomePrefix, Handler: mux, Exact: true}, nil
}
