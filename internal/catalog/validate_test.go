package catalog

import (
	"strings"
	"testing"
)

func validLesson(id string, number int) Lesson {
	return Lesson{
		ID:       id,
		Number:   number,
		Title:    id,
		Sections: []Section{{ID: "s1", Title: "S1"}},
	}
}

func TestValidate_DefaultCatalogPasses(t *testing.T) {
	if _, err := Default(); err != nil {
		t.Fatalf("default catalog validation failed: %v", err)
	}
}

func TestValidatePhases_DetectsDuplicateLessonID(t *testing.T) {
	phases := []Phase{
		{ID: 1, Lessons: []Lesson{validLesson("a", 1), validLesson("a", 2)}},
	}
	errs := validatePhases(LevelBeginner, phases)
	if !containsMsg(errs, "duplicate lesson ID") {
		t.Errorf("expected duplicate lesson error, got %v", errs)
	}
}

func TestValidatePhases_DetectsPhaseGap(t *testing.T) {
	phases := []Phase{
		{ID: 1, Lessons: []Lesson{validLesson("a", 1)}},
		{ID: 3, Lessons: []Lesson{validLesson("b", 2)}},
	}
	errs := validatePhases(LevelBeginner, phases)
	if !containsMsg(errs, "has id 3, want 2") {
		t.Errorf("expected phase id error, got %v", errs)
	}
}

func TestValidatePhases_DetectsNumberingGap(t *testing.T) {
	phases := []Phase{
		{ID: 1, Lessons: []Lesson{validLesson("a", 1), validLesson("b", 3)}},
	}
	errs := validatePhases(LevelBeginner, phases)
	if !containsMsg(errs, "number is 3, want 2") {
		t.Errorf("expected numbering error, got %v", errs)
	}
}

func TestValidatePhases_DetectsEmptyLesson(t *testing.T) {
	l := validLesson("a", 1)
	l.Sections = nil
	errs := validatePhases(LevelBeginner, []Phase{{ID: 1, Lessons: []Lesson{l}}})
	if !containsMsg(errs, "has no sections") {
		t.Errorf("expected empty lesson error, got %v", errs)
	}
}

func TestValidatePhases_RejectsDurationLabels(t *testing.T) {
	for _, label := range []string{"1 hr 20 min", "15-20 min", "a while"} {
		l := validLesson("a", 1)
		l.Duration = label
		errs := validatePhases(LevelBeginner, []Phase{{ID: 1, Lessons: []Lesson{l}}})
		if !containsMsg(errs, `want "N min"`) {
			t.Errorf("duration %q: expected duration error, got %v", label, errs)
		}
	}

	l := validLesson("a", 1)
	l.Duration = "15 min"
	if errs := validatePhases(LevelBeginner, []Phase{{ID: 1, Lessons: []Lesson{l}}}); len(errs) != 0 {
		t.Errorf("expected no errors for %q, got %v", l.Duration, errs)
	}
}

func TestValidateSections(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
		want     string
	}{
		{
			name:     "duplicate id",
			sections: []Section{{ID: "s1"}, {ID: "s1"}},
			want:     "duplicate section ID",
		},
		{
			name:     "video required without video",
			sections: []Section{{ID: "s1", VideoRequired: true}},
			want:     "video required",
		},
		{
			name:     "single option quiz",
			sections: []Section{{ID: "s1", Quiz: &Quiz{Options: []string{"only"}}}},
			want:     "at least 2 options",
		},
		{
			name:     "correct index out of range",
			sections: []Section{{ID: "s1", Quiz: &Quiz{Options: []string{"a", "b"}, CorrectIndex: 2}}},
			want:     "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateSections("lesson", tt.sections)
			if !containsMsg(errs, tt.want) {
				t.Errorf("expected %q in %v", tt.want, errs)
			}
		})
	}
}

func containsMsg(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
