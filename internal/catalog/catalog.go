package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

const levelsFile = "levels.yaml"

// Catalog is the static, read-only course content indexed by level.
type Catalog struct {
	configs map[Level]LevelConfig
	phases  map[Level][]Phase
}

type levelDoc struct {
	Level   Level        `yaml:"level"`
	Extends *extendsSpec `yaml:"extends,omitempty"`
	Phases  []Phase      `yaml:"phases"`
}

// extendsSpec reuses the leading phases of another level's curriculum.
type extendsSpec struct {
	Level            Level `yaml:"level"`
	Phases           int   `yaml:"phases"`
	SkippableThrough int   `yaml:"skippable_through"`
}

type levelsDoc struct {
	Levels []LevelConfig `yaml:"levels"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(contentFS, "content")
		if err != nil {
			defaultErr = fmt.Errorf("open embedded content: %w", err)
			return
		}
		defaultCat, defaultErr = Load(sub)
	})
	return defaultCat, defaultErr
}

// MustDefault is like Default but panics if the embedded content is invalid.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads levels.yaml plus one <level>.yaml per level from fsys,
// resolves extends blocks and validates the result.
func Load(fsys fs.FS) (*Catalog, error) {
	var ld levelsDoc
	if err := readYAML(fsys, levelsFile, &ld); err != nil {
		return nil, err
	}

	docs := make(map[Level]levelDoc, len(AllLevels()))
	for _, level := range AllLevels() {
		var doc levelDoc
		if err := readYAML(fsys, string(level)+".yaml", &doc); err != nil {
			return nil, err
		}
		if doc.Level == "" {
			doc.Level = level
		}
		if doc.Level != level {
			return nil, fmt.Errorf("%s.yaml declares level %q", level, doc.Level)
		}
		docs[level] = doc
	}

	c := &Catalog{
		configs: make(map[Level]LevelConfig, len(ld.Levels)),
		phases:  make(map[Level][]Phase, len(docs)),
	}
	for _, cfg := range ld.Levels {
		c.configs[cfg.ID] = cfg
	}

	for _, level := range AllLevels() {
		phases, err := resolvePhases(docs, level)
		if err != nil {
			return nil, err
		}
		c.phases[level] = phases
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readYAML(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// resolvePhases returns the full phase list of a level, copying inherited
// phases so that flags applied here never leak into the base level.
func resolvePhases(docs map[Level]levelDoc, level Level) ([]Phase, error) {
	doc := docs[level]
	if doc.Extends == nil {
		return doc.Phases, nil
	}

	ext := doc.Extends
	base, ok := docs[ext.Level]
	if !ok {
		return nil, fmt.Errorf("level %q extends unknown level %q", level, ext.Level)
	}
	if base.Extends != nil {
		return nil, fmt.Errorf("level %q extends %q which itself extends another level", level, ext.Level)
	}
	if ext.Phases < 0 || ext.Phases > len(base.Phases) {
		return nil, fmt.Errorf("level %q extends %d phases of %q, which has %d", level, ext.Phases, ext.Level, len(base.Phases))
	}

	phases := make([]Phase, 0, ext.Phases+len(doc.Phases))
	for _, p := range base.Phases[:ext.Phases] {
		cp := p
		cp.Lessons = slices.Clone(p.Lessons)
		for i := range cp.Lessons {
			cp.Lessons[i].Skippable = cp.ID <= ext.SkippableThrough
		}
		phases = append(phases, cp)
	}
	return append(phases, doc.Phases...), nil
}

// Config returns the display configuration of a level.
func (c *Catalog) Config(level Level) (LevelConfig, bool) {
	cfg, ok := c.configs[level]
	return cfg, ok
}

// PhasesByLevel returns the ordered phases of a level's curriculum.
func (c *Catalog) PhasesByLevel(level Level) []Phase {
	return slices.Clone(c.phases[level])
}

// FindLesson scans the phases of level, then their lessons, for lessonID.
func (c *Catalog) FindLesson(lessonID string, level Level) (LessonRef, bool) {
	phases := c.phases[level]
	for i := range phases {
		for j := range phases[i].Lessons {
			if phases[i].Lessons[j].ID == lessonID {
				return LessonRef{Lesson: &phases[i].Lessons[j], Phase: &phases[i], Level: level}, true
			}
		}
	}
	return LessonRef{}, false
}

// FindLessonAcrossLevels tries every level in AllLevels order and returns
// the first match.
func (c *Catalog) FindLessonAcrossLevels(lessonID string) (LessonRef, bool) {
	for _, level := range AllLevels() {
		if ref, ok := c.FindLesson(lessonID, level); ok {
			return ref, true
		}
	}
	return LessonRef{}, false
}

// FindPhase returns the phase with the given id in a level.
func (c *Catalog) FindPhase(phaseID int, level Level) (*Phase, bool) {
	phases := c.phases[level]
	for i := range phases {
		if phases[i].ID == phaseID {
			return &phases[i], true
		}
	}
	return nil, false
}

// Lessons returns every lesson of a level in catalog order.
func (c *Catalog) Lessons(level Level) []LessonRef {
	phases := c.phases[level]
	var refs []LessonRef
	for i := range phases {
		for j := range phases[i].Lessons {
			refs = append(refs, LessonRef{Lesson: &phases[i].Lessons[j], Phase: &phases[i], Level: level})
		}
	}
	return refs
}

// Neighbors returns the lessons before and after lessonID in catalog
// order. Either side is invalid at the ends of the curriculum; ok is false
// when the lesson is not part of the level.
func (c *Catalog) Neighbors(lessonID string, level Level) (prev, next LessonRef, ok bool) {
	refs := c.Lessons(level)
	for i, r := range refs {
		if r.Lesson.ID != lessonID {
			continue
		}
		if i > 0 {
			prev = refs[i-1]
		}
		if i < len(refs)-1 {
			next = refs[i+1]
		}
		return prev, next, true
	}
	return LessonRef{}, LessonRef{}, false
}

// TotalLessons counts the lessons across all phases of a level.
func (c *Catalog) TotalLessons(level Level) int {
	total := 0
	for _, p := range c.phases[level] {
		total += len(p.Lessons)
	}
	return total
}
