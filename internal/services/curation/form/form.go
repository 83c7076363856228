// Package form holds the editable state of a curation request: a test name
// and an ordered list of requirement rows.
package form

import (
	"errors"
	"fmt"
)

// Field names a row attribute that can be edited.
type Field string

const (
	FieldClass         Field = "class"
	FieldChapter       Field = "chapter"
	FieldQuestionType  Field = "questionType"
	FieldQuestionCount Field = "questionCount"
)

// ErrUnknownField is returned when UpdateField is given an unsupported field.
var ErrUnknownField = errors.New("unknown field")

// Row is one requirement: how many questions of one type from one chapter.
// All values are kept verbatim as entered.
type Row struct {
	ID            int
	Class         string
	Chapter       string
	QuestionType  string
	QuestionCount string
}

// Form is the curation form state. Row ids are assigned from a counter that
// only grows, so an id is never reused within one Form.
type Form struct {
	TestName string
	rows     []Row
	nextID   int
}

// New returns a form with one empty row.
func New() *Form {
	f := &Form{nextID: 1}
	f.AddRow()
	return f
}

// Rows returns a copy of the rows in display order.
func (f *Form) Rows() []Row {
	out := make([]Row, len(f.rows))
	copy(out, f.rows)
	return out
}

// Len returns the number of rows.
func (f *Form) Len() int {
	return len(f.rows)
}

// CanRemove reports whether a row may be removed.
func (f *Form) CanRemove() bool {
	return len(f.rows) > 1
}

// AddRow appends an empty row with a fresh id and returns it.
func (f *Form) AddRow() Row {
	row := Row{ID: f.nextID}
	f.nextID++
	f.rows = append(f.rows, row)
	return row
}

// RemoveRow deletes the row at index. It is a no-op when index is out of
// range or only one row remains.
func (f *Form) RemoveRow(index int) {
	if !f.CanRemove() || index < 0 || index >= len(f.rows) {
		return
	}
	f.rows = append(f.rows[:index], f.rows[index+1:]...)
}

// UpdateField sets one attribute of the row at index. Changing the class
// clears the chapter, since chapters belong to a class.
func (f *Form) UpdateField(index int, field Field, value string) error {
	if index < 0 || index >= len(f.rows) {
		return fmt.Errorf("update row %d: index out of range", index)
	}
	row := &f.rows[index]
	switch field {
	case FieldClass:
		if row.Class != value {
			row.Chapter = ""
		}
		row.Class = value
	case FieldChapter:
		row.Chapter = value
	case FieldQuestionType:
		row.QuestionType = value
	case FieldQuestionCount:
		row.QuestionCount = value
	default:
		return fmt.Errorf("update row %d field %q: %w", index, field, ErrUnknownField)
	}
	return nil
}

// Clone returns an independent copy that keeps the id counter.
func (f *Form) Clone() *Form {
	return &Form{TestName: f.TestName, rows: f.Rows(), nextID: f.nextID}
}

// IndexOf returns the position of the row with id, or -1.
func (f *Form) IndexOf(id int) int {
	for i, row := range f.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Restore rebuilds a form from previously rendered rows. Row ids are kept and
// the id counter resumes after the largest one. An empty list yields New().
func Restore(testName string, rows []Row) *Form {
	if len(rows) == 0 {
		f := New()
		f.TestName = testName
		return f
	}
	f := &Form{TestName: testName, rows: make([]Row, len(rows)), nextID: 1}
	copy(f.rows, rows)
	for _, row := range rows {
		if row.ID >= f.nextID {
			f.nextID = row.ID + 1
		}
	}
	return f
}
