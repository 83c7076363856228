package form

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewStartsWithOneEmptyRow(t *testing.T) {
	t.Parallel()

	f := New()
	rows := f.Rows()
	if len(rows) != 1 {
		t.Fatalf("len(Rows()) = %d, want 1", len(rows))
	}
	if rows[0] != (Row{ID: 1}) {
		t.Fatalf("Rows()[0] = %+v, want empty row with id 1", rows[0])
	}
	if f.CanRemove() {
		t.Fatal("CanRemove() = true with a single row")
	}
}

func TestRowIDsAreNeverReused(t *testing.T) {
	t.Parallel()

	f := New()
	f.AddRow()
	f.AddRow()
	f.RemoveRow(2)
	added := f.AddRow()
	if added.ID != 4 {
		t.Fatalf("AddRow().ID = %d, want 4", added.ID)
	}
	seen := map[int]bool{}
	for _, row := range f.Rows() {
		if seen[row.ID] {
			t.Fatalf("duplicate row id %d", row.ID)
		}
		seen[row.ID] = true
	}
}

func TestRemoveRowKeepsAtLeastOneRow(t *testing.T) {
	t.Parallel()

	f := New()
	f.RemoveRow(0)
	if f.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.Len())
	}

	f.AddRow()
	f.RemoveRow(5)
	f.RemoveRow(-1)
	if f.Len() != 2 {
		t.Fatalf("Len() after out-of-range removes = %d, want 2", f.Len())
	}
	f.RemoveRow(0)
	if rows := f.Rows(); len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("Rows() = %+v, want only row 2", rows)
	}
}

func TestUpdateFieldClassChangeClearsChapter(t *testing.T) {
	t.Parallel()

	f := New()
	mustUpdate(t, f, 0, FieldClass, "11")
	mustUpdate(t, f, 0, FieldChapter, "Gravitation")
	mustUpdate(t, f, 0, FieldClass, "11")
	if got := f.Rows()[0].Chapter; got != "Gravitation" {
		t.Fatalf("Chapter after same-class update = %q, want Gravitation", got)
	}
	mustUpdate(t, f, 0, FieldClass, "12")
	if got := f.Rows()[0]; got.Class != "12" || got.Chapter != "" {
		t.Fatalf("row after class change = %+v", got)
	}
}

func TestUpdateFieldRejectsUnknownFieldAndIndex(t *testing.T) {
	t.Parallel()

	f := New()
	if err := f.UpdateField(0, Field("difficulty"), "hard"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("UpdateField(unknown) = %v, want ErrUnknownField", err)
	}
	if err := f.UpdateField(3, FieldChapter, "x"); err == nil {
		t.Fatal("expected out-of-range index error")
	}
}

func TestRequestPreservesOrderAndValues(t *testing.T) {
	t.Parallel()

	f := New()
	f.TestName = "MockRealTest_12th_31Aug"
	mustUpdate(t, f, 0, FieldClass, "12")
	mustUpdate(t, f, 0, FieldChapter, "Atoms")
	mustUpdate(t, f, 0, FieldQuestionType, "Numerical")
	mustUpdate(t, f, 0, FieldQuestionCount, "5")
	f.AddRow()

	data, err := json.Marshal(f.Request())
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	want := `{"testName":"MockRealTest_12th_31Aug","questions":[` +
		`{"id":1,"class":"12","chapter":"Atoms","questionType":"Numerical","questionCount":"5"},` +
		`{"id":2,"class":"","chapter":"","questionType":"","questionCount":""}]}`
	if string(data) != want {
		t.Fatalf("Request() JSON = %s\nwant %s", data, want)
	}
}

func TestRestoreResumesIDCounter(t *testing.T) {
	t.Parallel()

	f := Restore("t", []Row{{ID: 3, Class: "11"}, {ID: 7}})
	if got := f.AddRow().ID; got != 8 {
		t.Fatalf("AddRow().ID after Restore = %d, want 8", got)
	}
	if f.IndexOf(7) != 1 || f.IndexOf(99) != -1 {
		t.Fatalf("IndexOf() unexpected: %d %d", f.IndexOf(7), f.IndexOf(99))
	}

	empty := Restore("name", nil)
	if empty.Len() != 1 || empty.TestName != "name" {
		t.Fatalf("Restore(nil) = %d rows, name %q", empty.Len(), empty.TestName)
	}
}

func TestCloneKeepsIDCounter(t *testing.T) {
	t.Parallel()

	f := New()
	f.AddRow()
	f.AddRow()
	f.RemoveRow(2)

	c := f.Clone()
	if got := c.AddRow().ID; got != 4 {
		t.Fatalf("Clone().AddRow().ID = %d, want 4", got)
	}
	if f.Len() != 2 {
		t.Fatalf("source Len() = %d after editing clone, want 2", f.Len())
	}
}

func mustUpdate(t *testing.T, f *Form, index int, field Field, value string) {
	t.Helper()
	if err := f.UpdateField(index, field, value); err != nil {
		t.Fatalf("UpdateField(%d, %s, %q): %v", index, field, value, err)
	}
}
