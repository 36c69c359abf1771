package catalog

// Quiz is a single multiple-choice question attached to a section.
type Quiz struct {
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Explanation  string   `yaml:"explanation"`
}

// Section is the smallest content unit of a lesson.
type Section struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Content       string `yaml:"content"`
	Quiz          *Quiz  `yaml:"quiz,omitempty"`
	VideoURL      string `yaml:"video,omitempty"`
	VideoRequired bool   `yaml:"video_required,omitempty"`
}

// Lesson is a unit of instructional content made of ordered sections.
type Lesson struct {
	ID          string    `yaml:"id"`
	Number      int       `yaml:"number"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Duration    string    `yaml:"duration"`
	Objectives  []string  `yaml:"objectives"`
	Sections    []Section `yaml:"sections"`
	Skippable   bool      `yaml:"skippable,omitempty"`
}

// Phase is an ordered grouping of lessons within a level.
type Phase struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Duration    string   `yaml:"duration"`
	Lessons     []Lesson `yaml:"lessons"`
}

// LessonRef locates a lesson inside the catalog.
type LessonRef struct {
	Lesson *Lesson
	Phase  *Phase
	Level  Level
}

// Valid reports whether the reference points at a lesson.
func (r LessonRef) Valid() bool {
	return r.Lesson != nil && r.Phase != nil
}
