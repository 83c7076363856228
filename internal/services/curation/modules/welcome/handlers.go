package welcome

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/curation/internal/services/curation/drafts"
	"github.com/louisbranch/curation/internal/services/curation/form"
	module "github.com/louisbranch/curation/internal/services/curation/module"
	"github.com/louisbranch/curation/internal/services/curation/platform/authctx"
	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
	"github.com/louisbranch/curation/internal/services/curation/platform/pagerender"
	"github.com/louisbranch/curation/internal/services/curation/result"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
	"github.com/louisbranch/curation/internal/services/curation/syllabus"
	"github.com/louisbranch/curation/internal/services/curation/templates"
)

type handlers struct {
	service      service
	isAuthorized authctx.IsAuthorized
	syllabus     syllabus.Syllabus
	sheetURL     string
}

func newHandlers(s service, deps module.Dependencies) handlers {
	isAuthorized := deps.IsAuthorized
	if isAuthorized == nil {
		isAuthorized = authctx.FromCookie(nil)
	}
	syl := deps.Syllabus
	if len(syl.Classes) == 0 {
		syl = syllabus.Default()
	}
	return handlers{service: s, isAuthorized: isAuthorized, syllabus: syl, sheetURL: deps.SheetURL}
}

// authorized re-checks the session at render time with the same predicate
// the route guard uses.
func (h handlers) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.isAuthorized(r) {
		return true
	}
	httpx.WriteRedirect(w, r, routepath.Root)
	return false
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	d, err := h.service.open(strings.TrimSpace(r.URL.Query().Get("form")))
	if err != nil {
		log.Printf("open draft failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		pagerender.WriteError(w, r, http.StatusInternalServerError, "core.error.internal")
		return
	}
	h.render(w, r, http.StatusOK, d, nil)
}

func (h handlers) handleFormGet(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	httpx.WriteRedirect(w, r, routepath.WelcomeWithForm(r.PathValue("formID")))
}

func (h handlers) handleFormAction(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	draftID := r.PathValue("formID")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, draftID, apperrors.Wrap(apperrors.KindInvalidInput, "core.error.invalid_input", err))
		return
	}
	action, err := ParseAction(r.PostFormValue("action"))
	if err != nil {
		h.renderError(w, r, draftID, err)
		return
	}
	posted, err := parsePosted(r)
	if err != nil {
		h.renderError(w, r, draftID, err)
		return
	}

	d, err := h.service.apply(httpx.RequestContext(r), draftID, posted, action)
	if err != nil {
		if d.ID == "" {
			h.renderError(w, r, draftID, err)
			return
		}
		h.render(w, r, apperrors.HTTPStatus(err), d, err)
		return
	}
	status := http.StatusOK
	if action.Kind == actionSubmit && d.Failure != "" {
		status = http.StatusBadGateway
	}
	h.render(w, r, status, d, nil)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, http.StatusNotFound, "core.error.not_found")
}

// parsePosted reads the rows in the order their hidden row inputs appear.
func parsePosted(r *http.Request) (Posted, error) {
	posted := Posted{TestName: r.PostFormValue("testName")}
	for _, raw := range r.PostForm["row"] {
		rowID, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || rowID <= 0 {
			return Posted{}, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "invalid row id")
		}
		suffix := "-" + strconv.Itoa(rowID)
		posted.Rows = append(posted.Rows, form.Row{
			ID:            rowID,
			Class:         r.PostFormValue(string(form.FieldClass) + suffix),
			Chapter:       r.PostFormValue(string(form.FieldChapter) + suffix),
			QuestionType:  r.PostFormValue(string(form.FieldQuestionType) + suffix),
			QuestionCount: r.PostFormValue(string(form.FieldQuestionCount) + suffix),
		})
	}
	return posted, nil
}

func (h handlers) renderError(w http.ResponseWriter, r *http.Request, draftID string, err error) {
	d, ok := h.service.drafts.Get(draftID)
	if !ok {
		pagerender.WriteError(w, r, apperrors.HTTPStatus(err), apperrors.LocalizationKey(err))
		return
	}
	h.render(w, r, apperrors.HTTPStatus(err), d, err)
}

func (h handlers) render(w http.ResponseWriter, r *http.Request, status int, d drafts.Draft, actionErr error) {
	loc, lang := curationi18n.ResolveLocalizer(w, r)
	view := h.view(loc, d)
	if actionErr != nil {
		view.Error = curationi18n.LocalizeError(loc, actionErr)
	}
	err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("welcome.title"),
		StatusCode: status,
		Lang:       lang,
		Loc:        loc,
		Fragment:   templates.CurationPanel(loc, view),
	})
	if err != nil {
		log.Printf("render curation failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
}

func (h handlers) view(loc curationi18n.Localizer, d drafts.Draft) templates.CurationView {
	rows := d.Form.Rows()
	rowViews := make([]templates.RowView, len(rows))
	for i, row := range rows {
		rowViews[i] = templates.RowView{Index: i, Row: row, Chapters: h.syllabus.Chapters(row.Class)}
	}
	view := templates.CurationView{
		Action:        routepath.WelcomeForm(d.ID),
		SheetURL:      h.sheetURL,
		TestName:      d.Form.TestName,
		Rows:          rowViews,
		CanRemove:     d.Form.CanRemove(),
		Classes:       h.syllabus.ClassIDs(),
		QuestionTypes: h.syllabus.QuestionTypes,
		Pending:       d.Pending,
	}
	if d.Failure != "" {
		view.Error = loc.Sprintf("core.error.submit_failed", d.Failure)
	}
	if d.Submitted {
		built, err := result.Build(d.Response)
		switch {
		case errors.Is(err, result.ErrColumnLengthMismatch):
			view.Mismatched = true
		case err == nil:
			view.Result = built
		}
	}
	return view
}
