package welcome

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/louisbranch/curation/internal/services/curation/drafts"
	"github.com/louisbranch/curation/internal/services/curation/form"
	module "github.com/louisbranch/curation/internal/services/curation/module"
	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"github.com/louisbranch/curation/internal/services/curation/result"
	"github.com/louisbranch/curation/internal/services/curation/webhook"
)

// Action is one form button.
type Action struct {
	Kind  string
	Index int
}

const (
	actionUpdate = "update"
	actionAdd    = "add"
	actionRemove = "remove"
	actionSubmit = "submit"
)

const removePrefix = actionRemove + "-"

var errUnknownAction = apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "unknown form action")

// ParseAction decodes the action button value. An empty value is a submit.
func ParseAction(raw string) (Action, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", actionSubmit:
		return Action{Kind: actionSubmit}, nil
	case actionUpdate, actionAdd:
		return Action{Kind: raw}, nil
	}
	if rest, ok := strings.CutPrefix(raw, removePrefix); ok {
		index, err := strconv.Atoi(rest)
		if err == nil && index >= 0 {
			return Action{Kind: actionRemove, Index: index}, nil
		}
	}
	return Action{}, errUnknownAction
}

// Posted is the form state sent by the browser.
type Posted struct {
	TestName string
	Rows     []form.Row
}

// syncOrder applies chapter before class so a class change clears a chapter
// that was posted for the previous class.
var syncOrder = []form.Field{
	form.FieldQuestionType,
	form.FieldQuestionCount,
	form.FieldChapter,
	form.FieldClass,
}

func fieldValue(row form.Row, field form.Field) string {
	switch field {
	case form.FieldClass:
		return row.Class
	case form.FieldChapter:
		return row.Chapter
	case form.FieldQuestionType:
		return row.QuestionType
	default:
		return row.QuestionCount
	}
}

// Apply syncs posted values into f. Posted rows that f does not know are
// ignored.
func (p Posted) Apply(f *form.Form) error {
	f.TestName = p.TestName
	for _, row := range p.Rows {
		index := f.IndexOf(row.ID)
		if index < 0 {
			continue
		}
		for _, field := range syncOrder {
			if err := f.UpdateField(index, field, fieldValue(row, field)); err != nil {
				return err
			}
		}
	}
	return nil
}

type service struct {
	drafts   *drafts.Store
	poster   webhook.Poster
	endpoint string
}

func newService(deps module.Dependencies) service {
	return service{drafts: deps.Drafts, poster: deps.Webhook, endpoint: deps.CurationWebhookURL}
}

// open returns the draft with id, or a fresh one.
func (s service) open(draftID string) (drafts.Draft, error) {
	if draftID != "" {
		if d, ok := s.drafts.Get(draftID); ok {
			return d, nil
		}
	}
	return s.drafts.Create(nil)
}

// apply syncs posted values into the draft and runs action. Unknown drafts
// are rebuilt from the posted rows.
func (s service) apply(ctx context.Context, draftID string, posted Posted, action Action) (drafts.Draft, error) {
	if _, ok := s.drafts.Get(draftID); !ok {
		d, err := s.drafts.Create(form.Restore(posted.TestName, posted.Rows))
		if err != nil {
			return drafts.Draft{}, err
		}
		draftID = d.ID
	}
	d, err := s.drafts.Update(draftID, func(f *form.Form) error {
		if err := posted.Apply(f); err != nil {
			return err
		}
		switch action.Kind {
		case actionAdd:
			f.AddRow()
		case actionRemove:
			f.RemoveRow(action.Index)
		}
		return nil
	})
	if err != nil || action.Kind != actionSubmit {
		return d, err
	}
	return s.submit(ctx, draftID)
}

// submit sends the draft to the curation webhook. The pending flag is
// cleared on every path.
func (s service) submit(ctx context.Context, draftID string) (d drafts.Draft, err error) {
	req, err := s.drafts.Begin(draftID)
	if err != nil {
		current, _ := s.drafts.Get(draftID)
		return current, err
	}
	var (
		resp    result.Response
		failure string
	)
	defer func() {
		d, err = s.drafts.Finish(draftID, resp, failure)
	}()

	if s.poster == nil {
		failure = "curation webhook is not configured"
		return
	}
	raw, postErr := s.poster.Post(ctx, s.endpoint, req)
	if postErr == nil {
		resp, postErr = result.Decode(raw)
	}
	if postErr != nil {
		failure = postErr.Error()
		var remote *webhook.RemoteError
		if errors.As(postErr, &remote) {
			log.Printf("curation webhook rejected draft=%s status=%d", draftID, remote.StatusCode)
		} else {
			log.Printf("curation webhook failed draft=%s err=%v", draftID, postErr)
		}
		resp = nil
	}
	return
}
