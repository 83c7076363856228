package templates

import (
	"strconv"
	"strings"

	"github.com/louisbranch/curation/internal/services/curation/form"
	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
	"github.com/louisbranch/curation/internal/services/curation/result"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig makes htmx swap error responses so alerts rendered with 4xx and
// 5xx statuses reach the page.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[2345]..","swap":true,"error":false}]}`

// LoginPanelID is the element swapped by htmx after a sign-in attempt.
const LoginPanelID = "login-panel"

// CurationPanelID is the element swapped by htmx after every form action.
const CurationPanelID = "curation-panel"

// TestNamePlaceholder is the sample name shown in the empty test name input.
const TestNamePlaceholder = "MockRealTest_12th_31Aug"

// LayoutOptions describes the document shell around a page.
type LayoutOptions struct {
	Title     string
	Lang      string
	Loc       Localizer
	Languages []curationi18n.LanguageOption
}

// LoginView is the render model for the sign-in card.
type LoginView struct {
	Action   string
	From     string
	Username string
	Error    string
	Pending  bool
}

// RowView is one editable requirement row.
type RowView struct {
	Index    int
	Row      form.Row
	Chapters []string
}

// CurationView is the render model for the curation form and its result.
type CurationView struct {
	Action        string
	SheetURL      string
	TestName      string
	Rows          []RowView
	CanRemove     bool
	Classes       []string
	QuestionTypes []string
	Pending       bool
	Error         string
	Result        result.View
	Mismatched    bool
}

// ComposePageTitle appends the app name unless title already ends with it.
func ComposePageTitle(title, appName string) string {
	title = strings.TrimSpace(title)
	appName = strings.TrimSpace(appName)
	if title == "" {
		return appName
	}
	if appName == "" || strings.HasSuffix(title, "| "+appName) || title == appName {
		return title
	}
	return title + " | " + appName
}

func documentLang(lang string) string {
	if lang == "" {
		return "en-US"
	}
	return lang
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// selectOptions lists the placeholder and values. A selected value missing
// from values is appended so a posted choice survives a re-render.
func selectOptions(placeholder string, values []string, selected string) []selectOption {
	options := make([]selectOption, 0, len(values)+2)
	options = append(options, selectOption{Label: placeholder, Selected: selected == ""})
	known := selected == ""
	for _, value := range values {
		match := value == selected
		known = known || match
		options = append(options, selectOption{Value: value, Label: value, Selected: match})
	}
	if !known {
		options = append(options, selectOption{Value: selected, Label: selected, Selected: true})
	}
	return options
}

func fieldName(field form.Field, row form.Row) string {
	return string(field) + "-" + strconv.Itoa(row.ID)
}

func removeAction(index int) string {
	return "remove-" + strconv.Itoa(index)
}

func chapterPlaceholder(loc Localizer, row form.Row) string {
	if row.Class == "" {
		return T(loc, "welcome.select_class_first")
	}
	return T(loc, "welcome.select_chapter")
}

func panelTarget(id string) string {
	return "#" + id
}
