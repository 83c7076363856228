package welcome

import (
	"net/http"

	"github.com/louisbranch/curation/internal/services/curation/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Welcome, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.WelcomePrefix+"{$}", h.handlePage)
	mux.HandleFunc(http.MethodPost+" "+routepath.FormsPrefix+"{formID}", h.handleFormAction)
	mux.HandleFunc(http.MethodGet+" "+routepath.FormsPrefix+"{formID}", h.handleFormGet)
	mux.HandleFunc(http.MethodGet+" "+routepath.WelcomePrefix+"{rest...}", h.handleNotFound)
}
