package syllabus

import "testing"

func TestDefaultSyllabus(t *testing.T) {
	t.Parallel()

	s := Default()
	if got := s.ClassIDs(); len(got) != 2 || got[0] != "11" || got[1] != "12" {
		t.Fatalf("ClassIDs() = %v, want [11 12]", got)
	}
	if got := len(s.Chapters("11")); got != 17 {
		t.Fatalf("len(Chapters(11)) = %d, want 17", got)
	}
	chapters12 := s.Chapters("12")
	if got := len(chapters12); got != 14 {
		t.Fatalf("len(Chapters(12)) = %d, want 14", got)
	}
	if last := chapters12[len(chapters12)-1]; last != "Semiconductor Electronics: Materials, Devices and Simple Circuits" {
		t.Fatalf("last class 12 chapter = %q", last)
	}
	if got := len(s.QuestionTypes); got != 7 {
		t.Fatalf("len(QuestionTypes) = %d, want 7", got)
	}
	if s.Chapters("") != nil || s.Chapters("10") != nil {
		t.Fatal("expected unknown class to have no chapters")
	}
}

func TestChaptersReturnsCopy(t *testing.T) {
	t.Parallel()

	s := Default()
	chapters := s.Chapters("11")
	chapters[0] = "changed"
	if s.Chapters("11")[0] == "changed" {
		t.Fatal("Chapters() must not expose internal slice")
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"no classes":      "question_types: [A]",
		"blank class id":  "classes: [{id: ' '}]\nquestion_types: [A]",
		"duplicate class": "classes: [{id: '11'}, {id: '11'}]\nquestion_types: [A]",
		"no types":        "classes: [{id: '11'}]",
		"not yaml":        "classes: [",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
