package progress

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/store"
)

// memKV is an in-memory store.KVRepo.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	putErr  error
	puts    int
	deletes int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.data, key)
	return nil
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	t := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T, kv store.KVRepo, opts Options) *Store {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedClock()
	}
	return New(kv, catalog.MustDefault(), opts)
}

func openSQLite(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})

	rec := s.Load(context.Background())
	assert.False(t, rec.HasLevel())
	assert.True(t, rec.LevelSelectedAt.IsZero())
	assert.Empty(t, rec.Lessons)
	assert.Equal(t, MultiLevelKey, s.Key())
}

func TestLoadDefaultsOnMalformedValue(t *testing.T) {
	kv := newMemKV()
	kv.data[MultiLevelKey] = []byte(`{"selectedLevel": 7}`)
	s := newTestStore(t, kv, Options{MultiLevel: true})

	rec := s.Load(context.Background())
	assert.False(t, rec.HasLevel())
	assert.Empty(t, rec.Lessons)
}

func TestLoadDefaultsOnReadError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	s := newTestStore(t, kv, Options{MultiLevel: true})

	rec := s.Load(context.Background())
	assert.False(t, rec.HasLevel())
}

func TestSelectLevelResetsLessons(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})

	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = s.MarkLessonComplete(ctx, "beginner-lesson1")
	require.NoError(t, err)

	for _, level := range catalog.AllLevels() {
		rec, err := s.SelectLevel(ctx, level)
		require.NoError(t, err)
		assert.Equal(t, level, rec.SelectedLevel)
		assert.False(t, rec.LevelSelectedAt.IsZero())
		assert.Empty(t, rec.Lessons)
		assert.Equal(t, 0, s.CompletionStats(ctx, level).CompletedCount)
	}
}

func TestSelectLevelRejectsUnknown(t *testing.T) {
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})
	_, err := s.SelectLevel(context.Background(), catalog.Level("expert"))
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	first, err := s.MarkLessonComplete(ctx, "beginner-lesson1")
	require.NoError(t, err)
	assert.True(t, s.IsLessonCompleted(ctx, "beginner-lesson1"))

	second, err := s.MarkLessonComplete(ctx, "beginner-lesson1")
	require.NoError(t, err)
	assert.True(t, s.IsLessonCompleted(ctx, "beginner-lesson1"))

	assert.Len(t, second.Lessons, 1)
	assert.Equal(t, 1, s.CompletionStats(ctx, catalog.LevelBeginner).CompletedCount)
	assert.True(t, second.Lessons["beginner-lesson1"].CompletedAt.After(first.Lessons["beginner-lesson1"].CompletedAt))
}

func TestRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	kv := openSQLite(t).KVRepo()
	s := newTestStore(t, kv, Options{MultiLevel: true})

	_, err := s.SelectLevel(ctx, catalog.LevelStandard)
	require.NoError(t, err)
	_, err = s.MarkLessonComplete(ctx, "phase2-lesson5")
	require.NoError(t, err)

	// A fresh store sees what the first one wrote.
	fresh := newTestStore(t, kv, Options{MultiLevel: true})
	rec := fresh.Load(ctx)
	assert.Equal(t, catalog.LevelStandard, rec.SelectedLevel)
	require.Len(t, rec.Lessons, 1)
	assert.True(t, rec.Lessons["phase2-lesson5"].Completed)
}

func TestBeginnerScenarioThroughStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	for _, id := range []string{"beginner-lesson1", "beginner-lesson2", "beginner-lesson3"} {
		_, err := s.MarkLessonComplete(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, PhaseStats{Completed: 3, Total: 3, Percent: 100}, s.PhaseStats(ctx, 1, catalog.LevelBeginner))
	assert.Equal(t, Stats{CompletedCount: 3, TotalCount: 10, Percent: 30}, s.CompletionStats(ctx, catalog.LevelBeginner))

	next, ok := s.NextIncompleteLesson(ctx, catalog.LevelBeginner)
	require.True(t, ok)
	assert.Equal(t, "beginner-lesson4", next.Lesson.ID)
	assert.Equal(t, 2, next.Phase.ID)
}

func TestResolveLessonAutoSelectsLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})

	ref, err := s.ResolveLesson(ctx, "advanced-phase5-lesson17")
	require.NoError(t, err)
	assert.Equal(t, catalog.LevelAdvanced, ref.Level)

	rec := s.Record(ctx)
	assert.Equal(t, catalog.LevelAdvanced, rec.SelectedLevel)
	assert.Empty(t, rec.Lessons)
}

func TestResolveLessonPrefersFirstLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})

	// Standard phases are shared with advanced; standard is tried first.
	ref, err := s.ResolveLesson(ctx, "phase1-lesson1")
	require.NoError(t, err)
	assert.Equal(t, catalog.LevelStandard, ref.Level)
}

func TestResolveLessonUnknownWithoutLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})

	_, err := s.ResolveLesson(ctx, "no-such-lesson")
	assert.ErrorIs(t, err, ErrLevelNotSelected)
	assert.False(t, s.Record(ctx).HasLevel())
}

func TestResolveLessonOutsideSelectedLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	_, err = s.ResolveLesson(ctx, "phase1-lesson1")
	assert.ErrorIs(t, err, ErrLessonNotFound)
	assert.Equal(t, catalog.LevelBeginner, s.Record(ctx).SelectedLevel)
}

func TestWriteFailureKeepsCachedRecord(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := newTestStore(t, kv, Options{MultiLevel: true})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	kv.putErr = errors.New("quota exceeded")
	_, err = s.MarkLessonComplete(ctx, "beginner-lesson1")
	require.Error(t, err)
	assert.False(t, s.IsLessonCompleted(ctx, "beginner-lesson1"))
}

func TestSingleLevelMode(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := newTestStore(t, kv, Options{DefaultLevel: catalog.LevelStandard})

	assert.Equal(t, SingleLevelKey, s.Key())
	assert.Equal(t, catalog.LevelStandard, s.Load(ctx).SelectedLevel)

	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	assert.ErrorIs(t, err, ErrSingleLevel)

	_, err = s.MarkLessonComplete(ctx, "phase1-lesson1")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"lessonId":"phase1-lesson1","completed":true,"completedAt":"2025-05-01T12:00:01Z"}]`,
		string(kv.data[SingleLevelKey]),
	)
}

func TestLayoutsAreNotInterchangeable(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data["shared"] = []byte(`[{"lessonId":"phase1-lesson1","completed":true}]`)

	s := newTestStore(t, kv, Options{Key: "shared", MultiLevel: true})
	rec := s.Load(ctx)
	assert.False(t, rec.HasLevel())
	assert.Empty(t, rec.Lessons)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := newTestStore(t, kv, Options{MultiLevel: true})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))
	assert.False(t, s.Record(ctx).HasLevel())
	_, ok := kv.data[MultiLevelKey]
	assert.False(t, ok)
}

func TestHistoryRecordsEvents(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	s := newTestStore(t, st.KVRepo(), Options{MultiLevel: true, Events: st.EventRepo()})

	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = s.MarkLessonComplete(ctx, "beginner-lesson1")
	require.NoError(t, err)
	_, err = s.SelectLevel(ctx, catalog.LevelStandard)
	require.NoError(t, err)

	events, err := s.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	switched := events[0]
	assert.Equal(t, store.EventLevelSelected, switched.Kind)
	assert.Equal(t, "standard", switched.Level)
	assert.Equal(t, "beginner", switched.FromLevel)
	assert.Equal(t, "beginner-lesson2", switched.LessonID)

	done := events[1]
	assert.Equal(t, store.EventLessonCompleted, done.Kind)
	assert.Equal(t, "beginner-lesson1", done.LessonID)
	assert.Equal(t, "beginner", done.Level)

	limited, err := s.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryWithoutEventLog(t *testing.T) {
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true})
	events, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestConcurrentCompletions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemKV(), Options{MultiLevel: true, Now: time.Now})
	_, err := s.SelectLevel(ctx, catalog.LevelBeginner)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, ref := range s.Catalog().Lessons(catalog.LevelBeginner) {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = s.MarkLessonComplete(ctx, id)
		}(ref.Lesson.ID)
	}
	wg.Wait()

	stats := s.CompletionStats(ctx, catalog.LevelBeginner)
	assert.Equal(t, 10, stats.CompletedCount)
	_, ok := s.NextIncompleteLesson(ctx, catalog.LevelBeginner)
	assert.False(t, ok)
}
