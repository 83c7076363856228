// Package routepath centralizes the browser-facing paths of the curation service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root          = "/"
	Login         = "/login"
	Welcome       = "/welcome"
	WelcomePrefix = "/welcome/"
	FormsPrefix   = "/welcome/forms/"
	API           = "/api"
	Health        = "/api/health"
	StaticPrefix  = "/static/"
	Assets        = "/assets"
	AssetsPrefix  = "/assets/"
	Favicon       = "/favicon.ico"
)

// WelcomeForm returns the path that receives edits for one draft.
func WelcomeForm(formID string) string {
	return FormsPrefix + url.PathEscape(formID)
}

// WelcomeWithForm returns the page path that reopens one draft.
func WelcomeWithForm(formID string) string {
	return Welcome + "?form=" + url.QueryEscape(formID)
}

// LoginFrom returns the login path carrying the originally requested path,
// percent-encoded as a single query component.
func LoginFrom(path string) string {
	return Root + "?from=" + strings.ReplaceAll(url.QueryEscape(path), "+", "%20")
}
