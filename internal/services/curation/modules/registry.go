// Package modules lists the feature modules composed into the root handler.
package modules

import (
	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/modules/login"
	"github.com/louisbranch/curation/internal/services/curation/modules/welcome"
)

// DefaultPublicModules returns the modules reachable without a session.
func DefaultPublicModules() []module.Module {
	return []module.Module{
		login.New(),
	}
}

// DefaultProtectedModules returns the modules behind the route guard.
func DefaultProtectedModules() []module.Module {
	return []module.Module{
		welcome.New(),
	}
}
