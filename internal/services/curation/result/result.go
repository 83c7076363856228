// Package result turns the column-oriented curation webhook response into
// table rows.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/louisbranch/curation/internal/services/curation/webhook"
)

// MissingDifficulty is shown when a row has no difficulty value.
const MissingDifficulty = "-"

// ErrColumnLengthMismatch reports required columns with different lengths.
var ErrColumnLengthMismatch = errors.New("response columns have different lengths")

// Columns is one element of the curation webhook response. Values at the
// same index across columns describe one question.
type Columns struct {
	ChapterName    []string      `json:"chapter_name"`
	QuestionType   []string      `json:"question_type"`
	DifficultyName []*string     `json:"difficulty_name,omitempty"`
	SourceLink     []string      `json:"source_link"`
	QuestionNumber []json.Number `json:"question_number"`
}

// Response is the full webhook response list.
type Response []Columns

// State selects what the result area renders.
type State int

const (
	// StateNone renders nothing.
	StateNone State = iota
	// StateEmpty renders the empty data set notice.
	StateEmpty
	// StateTable renders the rows.
	StateTable
)

// Row is one rendered table row.
type Row struct {
	ChapterName    string
	QuestionType   string
	Difficulty     string
	SourceLink     string
	SourceLinkSafe bool
	QuestionNumber string
}

// View is the render model for the result area.
type View struct {
	State State
	Rows  []Row
}

// Decode parses a raw webhook body. A body that is valid JSON but not an
// array decodes to a nil Response; element type mismatches are malformed.
func Decode(raw json.RawMessage) (Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	var resp Response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, &webhook.MalformedResponseError{Err: err}
	}
	return resp, nil
}

// Build renders the first response element. Only the first element is shown.
func Build(resp Response) (View, error) {
	if len(resp) == 0 {
		return View{State: StateNone}, nil
	}
	cols := resp[0]
	n := len(cols.ChapterName)
	if n == 0 {
		return View{State: StateEmpty}, nil
	}
	for _, col := range []struct {
		name   string
		length int
	}{
		{"question_type", len(cols.QuestionType)},
		{"source_link", len(cols.SourceLink)},
		{"question_number", len(cols.QuestionNumber)},
	} {
		if col.length != n {
			return View{}, fmt.Errorf("%w: chapter_name has %d values, %s has %d", ErrColumnLengthMismatch, n, col.name, col.length)
		}
	}

	rows := make([]Row, n)
	for i := range n {
		link := cols.SourceLink[i]
		rows[i] = Row{
			ChapterName:    cols.ChapterName[i],
			QuestionType:   cols.QuestionType[i],
			Difficulty:     difficultyAt(cols.DifficultyName, i),
			SourceLink:     link,
			SourceLinkSafe: isWebLink(link),
			QuestionNumber: cols.QuestionNumber[i].String(),
		}
	}
	return View{State: StateTable, Rows: rows}, nil
}

func difficultyAt(values []*string, i int) string {
	if i >= len(values) || values[i] == nil {
		return MissingDifficulty
	}
	return *values[i]
}

func isWebLink(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
