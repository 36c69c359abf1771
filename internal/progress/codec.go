package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/courseway/internal/catalog"
)

// ErrInvalidRecord is returned when a stored value does not have the shape
// of a progress record.
type ErrInvalidRecord struct {
	Content []byte
	Err     error
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("invalid progress record: %v", e.Err)
}

func (e *ErrInvalidRecord) Unwrap() error {
	return e.Err
}

type wireLesson struct {
	LessonID    string  `json:"lessonId"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

type wireRecord struct {
	SelectedLevel   *string      `json:"selectedLevel"`
	LevelSelectedAt *string      `json:"levelSelectedAt"`
	Lessons         []wireLesson `json:"lessons"`
}

const lessonSchema = `{
	"type": "object",
	"required": ["lessonId"],
	"properties": {
		"lessonId": {"type": "string", "minLength": 1},
		"completed": {"type": "boolean"},
		"completedAt": {"type": ["string", "null"]}
	}
}`

// envelopeSchema describes the multi-level record. Missing fields fall back
// to defaults; fields of the wrong type reject the whole value.
var envelopeSchema = `{
	"type": "object",
	"properties": {
		"selectedLevel": {"enum": ["beginner", "standard", "advanced", null]},
		"levelSelectedAt": {"type": ["string", "null"]},
		"lessons": {"type": "array", "items": ` + lessonSchema + `}
	}
}`

// listSchema describes the single-level record: the bare lesson list.
var listSchema = `{"type": "array", "items": ` + lessonSchema + `}`

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compiledSchema(name, def string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// validate checks raw against the schema for the given layout.
func validate(raw []byte, multiLevel bool) error {
	name, def := "progress-list", listSchema
	if multiLevel {
		name, def = "progress-envelope", envelopeSchema
	}

	schema, err := compiledSchema(name, def)
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidRecord{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(inst); err != nil {
		return &ErrInvalidRecord{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// Encode serializes r in the persisted layout. The multi-level layout is an
// envelope carrying the level; the single-level layout is the bare lesson
// list.
func Encode(r Record, multiLevel bool) ([]byte, error) {
	entries := r.Entries()
	lessons := make([]wireLesson, 0, len(entries))
	for _, lp := range entries {
		wl := wireLesson{LessonID: lp.LessonID, Completed: lp.Completed}
		if !lp.CompletedAt.IsZero() {
			ts := lp.CompletedAt.UTC().Format(time.RFC3339Nano)
			wl.CompletedAt = &ts
		}
		lessons = append(lessons, wl)
	}

	if !multiLevel {
		return json.Marshal(lessons)
	}

	w := wireRecord{Lessons: lessons}
	if r.HasLevel() {
		level := string(r.SelectedLevel)
		w.SelectedLevel = &level
	}
	if !r.LevelSelectedAt.IsZero() {
		ts := r.LevelSelectedAt.UTC().Format(time.RFC3339Nano)
		w.LevelSelectedAt = &ts
	}
	return json.Marshal(w)
}

// Decode parses a persisted value. The value is validated first; shape
// errors are reported as *ErrInvalidRecord. In the single-level layout the
// record's level is fixed to level.
func Decode(raw []byte, multiLevel bool, level catalog.Level) (Record, error) {
	if err := validate(raw, multiLevel); err != nil {
		return Record{}, err
	}

	rec := NewRecord()
	var lessons []wireLesson
	if multiLevel {
		var w wireRecord
		if err := json.Unmarshal(raw, &w); err != nil {
			return Record{}, &ErrInvalidRecord{Content: raw, Err: err}
		}
		if w.SelectedLevel != nil {
			rec.SelectedLevel = catalog.Level(*w.SelectedLevel)
		}
		rec.LevelSelectedAt = parseTime(w.LevelSelectedAt)
		lessons = w.Lessons
	} else {
		if err := json.Unmarshal(raw, &lessons); err != nil {
			return Record{}, &ErrInvalidRecord{Content: raw, Err: err}
		}
		rec.SelectedLevel = level
	}

	for _, wl := range lessons {
		rec.Lessons[wl.LessonID] = LessonProgress{
			LessonID:    wl.LessonID,
			Completed:   wl.Completed,
			CompletedAt: parseTime(wl.CompletedAt),
		}
	}
	return rec, nil
}

// parseTime reads an RFC 3339 timestamp; anything unreadable is zero.
func parseTime(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}
