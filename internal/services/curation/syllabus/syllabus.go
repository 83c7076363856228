// Package syllabus exposes the classes, chapters and question types offered
// by the curation form.
package syllabus

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed syllabus.yaml
var embedded []byte

// Class is one selectable class with its ordered chapters.
type Class struct {
	ID       string   `yaml:"id"`
	Chapters []string `yaml:"chapters"`
}

// Syllabus is the option set rendered into the requirement rows.
type Syllabus struct {
	Classes       []Class  `yaml:"classes"`
	QuestionTypes []string `yaml:"question_types"`
}

var defaultSyllabus = mustParse(embedded)

// Default returns the embedded syllabus.
func Default() Syllabus {
	return defaultSyllabus
}

// Parse decodes and validates a YAML syllabus document.
func Parse(data []byte) (Syllabus, error) {
	var s Syllabus
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Syllabus{}, fmt.Errorf("parse syllabus: %w", err)
	}
	if len(s.Classes) == 0 {
		return Syllabus{}, fmt.Errorf("parse syllabus: at least one class is required")
	}
	seen := make(map[string]bool, len(s.Classes))
	for i, class := range s.Classes {
		id := strings.TrimSpace(class.ID)
		if id == "" {
			return Syllabus{}, fmt.Errorf("parse syllabus: class %d has no id", i)
		}
		if seen[id] {
			return Syllabus{}, fmt.Errorf("parse syllabus: duplicate class %q", id)
		}
		seen[id] = true
		s.Classes[i].ID = id
	}
	if len(s.QuestionTypes) == 0 {
		return Syllabus{}, fmt.Errorf("parse syllabus: at least one question type is required")
	}
	return s, nil
}

// ClassIDs returns the class identifiers in display order.
func (s Syllabus) ClassIDs() []string {
	ids := make([]string, 0, len(s.Classes))
	for _, class := range s.Classes {
		ids = append(ids, class.ID)
	}
	return ids
}

// Chapters returns the chapters for classID, or nil when the class is unknown
// or empty.
func (s Syllabus) Chapters(classID string) []string {
	for _, class := range s.Classes {
		if class.ID == classID {
			return slices.Clone(class.Chapters)
		}
	}
	return nil
}

func mustParse(data []byte) Syllabus {
	s, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return s
}
