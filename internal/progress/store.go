package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/store"
)

// Storage keys of the two persisted layouts.
const (
	MultiLevelKey  = "webapp-course-progress"
	SingleLevelKey = "sdgs-pro-course-progress"
)

var (
	// ErrSingleLevel is returned by SelectLevel when level selection is disabled.
	ErrSingleLevel = errors.New("level selection is disabled")

	// ErrUnknownLevel is returned for a level outside the catalog.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrLevelNotSelected means no level is selected and none could be inferred.
	ErrLevelNotSelected = errors.New("no level selected")

	// ErrLessonNotFound means the lesson is not part of the selected level.
	ErrLessonNotFound = errors.New("lesson not found")
)

// Options configures a Store.
type Options struct {
	// Key overrides the storage key. Defaults to MultiLevelKey or
	// SingleLevelKey depending on MultiLevel.
	Key string

	// MultiLevel enables level selection and the envelope layout.
	MultiLevel bool

	// DefaultLevel is the fixed level in single-level mode.
	DefaultLevel catalog.Level

	// Events receives a progress event per mutation. Optional.
	Events store.EventRepo

	Logger *zap.Logger
	Now    func() time.Time
}

// Store owns the progress record for a session. It caches the record after
// the first read and serializes every read-modify-write cycle.
type Store struct {
	kv     store.KVRepo
	events store.EventRepo
	cat    *catalog.Catalog
	opts   Options
	log    *zap.Logger

	mu  sync.Mutex
	rec *Record
}

// New creates a Store backed by kv.
func New(kv store.KVRepo, cat *catalog.Catalog, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = SingleLevelKey
		if opts.MultiLevel {
			opts.Key = MultiLevelKey
		}
	}
	if !opts.DefaultLevel.Valid() {
		opts.DefaultLevel = catalog.LevelStandard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		kv:     kv,
		events: opts.Events,
		cat:    cat,
		opts:   opts,
		log:    opts.Logger.With(zap.String("key", opts.Key)),
	}
}

// Key returns the storage key the record lives under.
func (s *Store) Key() string {
	return s.opts.Key
}

// MultiLevel reports whether level selection is enabled.
func (s *Store) MultiLevel() bool {
	return s.opts.MultiLevel
}

// Catalog returns the catalog the store derives views from.
func (s *Store) Catalog() *catalog.Catalog {
	return s.cat
}

// Load re-reads the record from storage. A missing, unreadable or malformed
// value yields the default record; Load never fails.
func (s *Store) Load(ctx context.Context) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return s.current(ctx).Clone()
}

// Record returns the cached record, reading storage on first use.
func (s *Store) Record(ctx context.Context) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx).Clone()
}

// current returns the cached record. Caller must hold s.mu.
func (s *Store) current(ctx context.Context) *Record {
	if s.rec != nil {
		return s.rec
	}
	rec := s.read(ctx)
	s.rec = &rec
	return s.rec
}

func (s *Store) read(ctx context.Context) Record {
	raw, err := s.kv.Get(ctx, s.opts.Key)
	if errors.Is(err, store.ErrNotFound) {
		return s.defaultRecord()
	}
	if err != nil {
		s.log.Warn("read progress failed, starting fresh", zap.Error(err))
		return s.defaultRecord()
	}

	rec, err := Decode(raw, s.opts.MultiLevel, s.opts.DefaultLevel)
	if err != nil {
		s.log.Warn("stored progress is malformed, starting fresh", zap.Error(err))
		return s.defaultRecord()
	}
	return rec
}

func (s *Store) defaultRecord() Record {
	rec := NewRecord()
	if !s.opts.MultiLevel {
		rec.SelectedLevel = s.opts.DefaultLevel
	}
	return rec
}

// write persists rec and makes it the cached record. Caller must hold s.mu.
func (s *Store) write(ctx context.Context, rec Record) error {
	raw, err := Encode(rec, s.opts.MultiLevel)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Put(ctx, s.opts.Key, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	s.rec = &rec
	return nil
}

// record appends a progress event. Failures are logged, never returned.
func (s *Store) record(ctx context.Context, data store.ProgressEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendProgressEvent(ctx, data); err != nil {
		s.log.Warn("append progress event failed",
			zap.String("kind", string(data.Kind)),
			zap.Error(err),
		)
	}
}

// SelectLevel switches to level, stamps the selection time and clears all
// lesson entries.
func (s *Store) SelectLevel(ctx context.Context, level catalog.Level) (Record, error) {
	if !s.opts.MultiLevel {
		return Record{}, ErrSingleLevel
	}
	if !level.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLevel(ctx, level)
}

// selectLevel does the work of SelectLevel. Caller must hold s.mu.
func (s *Store) selectLevel(ctx context.Context, level catalog.Level) (Record, error) {
	prev := s.current(ctx)

	// Remember where the learner was in the level they are leaving.
	var atLesson string
	if prev.HasLevel() {
		if ref, ok := prev.NextIncompleteLesson(s.cat, prev.SelectedLevel); ok {
			atLesson = ref.Lesson.ID
		}
	}

	now := s.opts.Now()
	rec := NewRecord()
	rec.SelectedLevel = level
	rec.LevelSelectedAt = now
	if err := s.write(ctx, rec); err != nil {
		return Record{}, err
	}

	s.log.Info("level selected",
		zap.String("level", string(level)),
		zap.String("from", string(prev.SelectedLevel)),
	)
	s.record(ctx, store.ProgressEventData{
		Kind:      store.EventLevelSelected,
		Level:     string(level),
		FromLevel: string(prev.SelectedLevel),
		LessonID:  atLesson,
		Timestamp: now,
	})
	return rec.Clone(), nil
}

// MarkLessonComplete records lessonID as completed now, replacing any
// previous entry for it.
func (s *Store) MarkLessonComplete(ctx context.Context, lessonID string) (Record, error) {
	if lessonID == "" {
		return Record{}, fmt.Errorf("%w: empty lesson id", ErrLessonNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	rec := s.current(ctx).Clone()
	rec.Lessons[lessonID] = LessonProgress{
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: now,
	}
	if err := s.write(ctx, rec); err != nil {
		return Record{}, err
	}

	s.log.Info("lesson completed", zap.String("lesson", lessonID))
	s.record(ctx, store.ProgressEventData{
		Kind:      store.EventLessonCompleted,
		Level:     string(rec.SelectedLevel),
		LessonID:  lessonID,
		Timestamp: now,
	})
	return rec.Clone(), nil
}

// IsLessonCompleted reports whether lessonID is completed.
func (s *Store) IsLessonCompleted(ctx context.Context, lessonID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx).IsLessonCompleted(lessonID)
}

// CompletionStats summarizes completion of level.
func (s *Store) CompletionStats(ctx context.Context, level catalog.Level) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx).CompletionStats(s.cat, level)
}

// PhaseStats summarizes completion of one phase of level.
func (s *Store) PhaseStats(ctx context.Context, phaseID int, level catalog.Level) PhaseStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx).PhaseStats(s.cat, phaseID, level)
}

// NextIncompleteLesson returns the first lesson of level not yet completed.
func (s *Store) NextIncompleteLesson(ctx context.Context, level catalog.Level) (catalog.LessonRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx).NextIncompleteLesson(s.cat, level)
}

// ResolveLesson locates lessonID for display. With a level selected the
// lesson must belong to it. Without one, the lesson's level is inferred
// from the catalog and selected, which leaves the lesson list empty.
// ErrLevelNotSelected means the caller should send the learner to level
// selection.
func (s *Store) ResolveLesson(ctx context.Context, lessonID string) (catalog.LessonRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.current(ctx)
	if rec.HasLevel() {
		ref, ok := s.cat.FindLesson(lessonID, rec.SelectedLevel)
		if !ok {
			return catalog.LessonRef{}, fmt.Errorf("%w: %q in %s", ErrLessonNotFound, lessonID, rec.SelectedLevel)
		}
		return ref, nil
	}

	ref, ok := s.cat.FindLessonAcrossLevels(lessonID)
	if !ok {
		return catalog.LessonRef{}, fmt.Errorf("%w: cannot infer level for %q", ErrLevelNotSelected, lessonID)
	}
	if _, err := s.selectLevel(ctx, ref.Level); err != nil {
		return catalog.LessonRef{}, err
	}
	return ref, nil
}

// Reset deletes the stored record and returns to the default.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current(ctx).SelectedLevel
	if err := s.kv.Delete(ctx, s.opts.Key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	rec := s.defaultRecord()
	s.rec = &rec

	s.log.Info("progress reset")
	s.record(ctx, store.ProgressEventData{
		Kind:      store.EventProgressReset,
		FromLevel: string(prev),
		Timestamp: s.opts.Now(),
	})
	return nil
}

// History returns up to limit progress events, newest first. It returns
// nil when the store was built without an event log.
func (s *Store) History(ctx context.Context, limit int) ([]store.ProgressEvent, error) {
	if s.events == nil {
		return nil, nil
	}
	events, err := s.events.ProgressEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return events, nil
}
