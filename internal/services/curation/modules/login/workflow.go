package login

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"github.com/louisbranch/curation/internal/services/curation/sessiontoken"
	"github.com/louisbranch/curation/internal/services/curation/webhook"
)

// ErrInvalidCredentials is reported when the auth webhook answers without
// "success": true.
var ErrInvalidCredentials = apperrors.EK(apperrors.KindUnauthorized, "login.invalid_credentials", "invalid credentials")

// Credentials is the sign-in form input. It is forwarded and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Outcome is the result of one sign-in attempt.
type Outcome struct {
	Authenticated bool
	// Token is empty when issuing failed after a successful sign-in.
	Token sessiontoken.Token
	// Err is ErrInvalidCredentials or a *SubmitError.
	Err error
}

// SubmitError wraps a failure talking to the auth webhook.
type SubmitError struct {
	Cause error
}

func (e *SubmitError) Error() string {
	return "failed to submit form: " + e.Cause.Error()
}

func (e *SubmitError) Unwrap() error { return e.Cause }

// Workflow forwards credentials to the auth webhook and issues a session.
type Workflow struct {
	poster   webhook.Poster
	endpoint string
	sessions sessiontoken.Manager
	now      func() time.Time
}

// NewWorkflow builds a Workflow posting to endpoint.
func NewWorkflow(poster webhook.Poster, endpoint string, sessions sessiontoken.Manager, now func() time.Time) Workflow {
	if now == nil {
		now = time.Now
	}
	return Workflow{poster: poster, endpoint: endpoint, sessions: sessions, now: now}
}

// Submit runs one sign-in attempt.
func (wf Workflow) Submit(ctx context.Context, creds Credentials) Outcome {
	if wf.poster == nil {
		return Outcome{Err: &SubmitError{Cause: errors.New("auth webhook is not configured")}}
	}
	raw, err := wf.poster.Post(ctx, wf.endpoint, creds)
	if err != nil {
		return Outcome{Err: &SubmitError{Cause: err}}
	}
	if !accepted(raw) {
		return Outcome{Err: ErrInvalidCredentials}
	}

	out := Outcome{Authenticated: true}
	if wf.sessions == nil {
		return out
	}
	token, err := wf.sessions.Issue(ctx, wf.now())
	if err != nil {
		log.Printf("session issue failed: %v", err)
		return out
	}
	out.Token = token
	return out
}

// accepted reports whether raw is an object whose success member is the
// JSON boolean true.
func accepted(raw json.RawMessage) bool {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return false
	}
	success, ok := body["success"].(bool)
	return ok && success
}
