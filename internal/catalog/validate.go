package catalog

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on the loaded catalog.
// Returns a combined error describing all problems found, or nil if valid.
func (c *Catalog) validate() error {
	var errs []string

	for _, level := range AllLevels() {
		cfg, ok := c.configs[level]
		if !ok {
			errs = append(errs, fmt.Sprintf("level %q has no configuration", level))
		}
		errs = append(errs, validatePhases(level, c.phases[level])...)

		if ok && cfg.LessonCount != c.TotalLessons(level) {
			errs = append(errs, fmt.Sprintf("level %q declares %d lessons but has %d", level, cfg.LessonCount, c.TotalLessons(level)))
		}
	}

	for id := range c.configs {
		if !id.Valid() {
			errs = append(errs, fmt.Sprintf("configuration for unknown level %q", id))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validatePhases checks one level's curriculum.
func validatePhases(level Level, phases []Phase) []string {
	var errs []string
	lessonIDs := make(map[string]bool)
	number := 0

	for i, p := range phases {
		if p.ID != i+1 {
			errs = append(errs, fmt.Sprintf("%s: phase at position %d has id %d, want %d", level, i, p.ID, i+1))
		}

		for _, l := range p.Lessons {
			number++
			prefix := fmt.Sprintf("%s: lesson %q", level, l.ID)

			if l.ID == "" {
				errs = append(errs, fmt.Sprintf("%s: phase %d has a lesson without an id", level, p.ID))
			}
			if lessonIDs[l.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate lesson ID: %q", level, l.ID))
			}
			lessonIDs[l.ID] = true

			if l.Number != number {
				errs = append(errs, fmt.Sprintf("%s: number is %d, want %d", prefix, l.Number, number))
			}
			if l.Duration != "" {
				if _, ok := ParseLessonMinutes(l.Duration); !ok {
					errs = append(errs, fmt.Sprintf("%s: duration %q, want \"N min\"", prefix, l.Duration))
				}
			}
			if len(l.Sections) == 0 {
				errs = append(errs, fmt.Sprintf("%s: has no sections", prefix))
			}
			errs = append(errs, validateSections(prefix, l.Sections)...)
		}
	}
	return errs
}

func validateSections(prefix string, sections []Section) []string {
	var errs []string
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate section ID: %q", prefix, s.ID))
		}
		seen[s.ID] = true

		if s.VideoRequired && s.VideoURL == "" {
			errs = append(errs, fmt.Sprintf("%s section %q: video required but no video set", prefix, s.ID))
		}

		if q := s.Quiz; q != nil {
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s section %q: quiz needs at least 2 options, got %d", prefix, s.ID, len(q.Options)))
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s section %q: quiz correct index %d out of range", prefix, s.ID, q.CorrectIndex))
			}
		}
	}
	return errs
}
