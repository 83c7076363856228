// Package login serves the sign-in page and the public utility routes.
package login

import (
	"net/http"

	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
)

// Module serves the public surface.
type Module struct{}

// New returns the login module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "login" }

// Mount wires the login routes at the root prefix.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
