package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const eventsTable = "progress_events"

// eventRepo implements EventRepo on the ent SQL driver.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendProgressEvent(ctx context.Context, data ProgressEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("id", "sequence", "kind", "level", "from_level", "lesson_id", "created_at").
		Values(uuid.NewString(), seqNum, string(data.Kind), data.Level, data.FromLevel, data.LessonID, ts.UTC().Format(timeLayout)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) ProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "kind", "level", "from_level", "lesson_id", "created_at").
		From(entsql.Table(eventsTable))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UTC().Format(timeLayout)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UTC().Format(timeLayout)))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var events []ProgressEvent
	for rows.Next() {
		var (
			ev        ProgressEvent
			kind      string
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &kind, &ev.Level, &ev.FromLevel, &ev.LessonID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		ev.Kind = EventKind(kind)
		ts, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", createdAt, err)
		}
		ev.Timestamp = ts
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress events: %w", err)
	}
	return events, nil
}
