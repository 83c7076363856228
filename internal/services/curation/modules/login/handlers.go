package login

import (
	"errors"
	"log"
	"net/http"
	"strings"

	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
	"github.com/louisbranch/curation/internal/services/curation/platform/pagerender"
	"github.com/louisbranch/curation/internal/services/curation/platform/sessioncookie"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
	"github.com/louisbranch/curation/internal/services/curation/templates"
)

type handlers struct {
	workflow Workflow
	deps     module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{
		workflow: NewWorkflow(deps.Webhook, deps.AuthWebhookURL, deps.Sessions, deps.Now),
		deps:     deps,
	}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	loc, lang := curationi18n.ResolveLocalizer(w, r)
	view := templates.LoginView{From: strings.TrimSpace(r.URL.Query().Get("from"))}
	h.renderLogin(w, r, loc, lang, http.StatusOK, view)
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	loc, lang := curationi18n.ResolveLocalizer(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loc, lang, http.StatusBadRequest, templates.LoginView{Error: loc.Sprintf("core.error.invalid_input")})
		return
	}
	creds := Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	view := templates.LoginView{
		From:     strings.TrimSpace(r.PostFormValue("from")),
		Username: creds.Username,
	}

	outcome := h.workflow.Submit(httpx.RequestContext(r), creds)
	if outcome.Authenticated {
		if outcome.Token.Value != "" {
			sessioncookie.Write(w, r, outcome.Token.Value, outcome.Token.ExpiresAt, h.deps.SchemePolicy)
		}
		httpx.WriteRedirect(w, r, routepath.Welcome)
		return
	}

	status := http.StatusUnauthorized
	var submitErr *SubmitError
	if errors.As(outcome.Err, &submitErr) {
		log.Printf("auth webhook failed request_id=%s err=%v", httpx.RequestIDFrom(r), submitErr.Cause)
		view.Error = loc.Sprintf("core.error.submit_failed", submitErr.Cause.Error())
		status = http.StatusBadGateway
	} else {
		view.Error = curationi18n.LocalizeError(loc, outcome.Err)
	}
	h.renderLogin(w, r, loc, lang, status, view)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, http.StatusNotFound, "core.error.not_found")
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, loc curationi18n.Localizer, lang string, status int, view templates.LoginView) {
	view.Action = routepath.Login
	err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("login.title"),
		StatusCode: status,
		Lang:       lang,
		Loc:        loc,
		Fragment:   templates.LoginPanel(loc, view),
	})
	if err != nil {
		log.Printf("render login failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
}
