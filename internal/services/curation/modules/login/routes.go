package login

import (
	"net/http"

	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.Favicon, h.handleFavicon)
	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
