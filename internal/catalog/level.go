package catalog

// Level is a difficulty tier of the curriculum. Each level has its own
// independent phase and lesson tree.
type Level string

const (
	LevelBeginner Level = "beginner"
	LevelStandard Level = "standard"
	LevelAdvanced Level = "advanced"
)

// AllLevels returns all levels in lookup and display order.
func AllLevels() []Level {
	return []Level{
		LevelBeginner,
		LevelStandard,
		LevelAdvanced,
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, bool) {
	for _, l := range AllLevels() {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := ParseLevel(string(l))
	return ok
}

// UnitLabel is the word used for a phase at this level.
func (l Level) UnitLabel() string {
	if l == LevelBeginner {
		return "Unit"
	}
	return "Phase"
}

// Next returns the level after l, or false for the last level.
func (l Level) Next() (Level, bool) {
	levels := AllLevels()
	for i, lv := range levels {
		if lv == l && i+1 < len(levels) {
			return levels[i+1], true
		}
	}
	return "", false
}

// LevelConfig is the static display configuration of a level.
type LevelConfig struct {
	ID             Level    `yaml:"id"`
	Name           string   `yaml:"name"`
	NameJa         string   `yaml:"name_ja"`
	Description    string   `yaml:"description"`
	Icon           string   `yaml:"icon"`
	EstimatedTime  string   `yaml:"estimated_time"`
	LessonCount    int      `yaml:"lesson_count"`
	Features       []string `yaml:"features"`
	TargetAudience []string `yaml:"target_audience"`
}

// Badge renders the short "icon name" label used in headers.
func (c LevelConfig) Badge() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}
