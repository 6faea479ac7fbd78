package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// eventColumns is the column list used for SELECT statements on the events table.
const eventColumns = `id, title, description, event_date, notified, completed,
	category, priority, location, participants, entities, keywords,
	intent, sentiment, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateEvent(ctx context.Context, db executor, e *model.Event) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO events (
			id, title, description, event_date, notified, completed,
			category, priority, location, participants, entities, keywords,
			intent, sentiment, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16
		)`,
		e.ID,
		e.Title,
		e.Description,
		e.EventDate,
		e.Notified,
		e.Completed,
		string(e.Category),
		string(e.Priority),
		e.Location,
		jsonbStrings(e.Participants),
		jsonbStrings(e.Entities),
		jsonbStrings(e.Keywords),
		string(e.Intent),
		string(e.Sentiment),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func queryGetEvent(ctx context.Context, db executor, id string) (*model.Event, error) {
	row := db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func queryListEvents(ctx context.Context, db executor, filter model.EventFilter) ([]*model.Event, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		where = append(where, "category = "+arg(string(filter.Category)))
	}
	if filter.Search != "" {
		where = append(where, "title ILIKE "+arg("%"+filter.Search+"%"))
	}
	if filter.From != nil {
		where = append(where, "event_date >= "+arg(*filter.From))
	}
	if filter.Until != nil {
		where = append(where, "event_date < "+arg(*filter.Until))
	}
	if filter.Completed != nil {
		where = append(where, "completed = "+arg(*filter.Completed))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY event_date"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func queryUpdateEvent(ctx context.Context, db executor, e *model.Event) error {
	res, err := db.ExecContext(ctx, `
		UPDATE events SET
			title = $2,
			description = $3,
			event_date = $4,
			notified = $5,
			completed = $6,
			category = $7,
			priority = $8,
			location = $9,
			participants = $10,
			entities = $11,
			keywords = $12,
			intent = $13,
			sentiment = $14,
			updated_at = $15
		WHERE id = $1`,
		e.ID,
		e.Title,
		e.Description,
		e.EventDate,
		e.Notified,
		e.Completed,
		string(e.Category),
		string(e.Priority),
		e.Location,
		jsonbStrings(e.Participants),
		jsonbStrings(e.Entities),
		jsonbStrings(e.Keywords),
		string(e.Intent),
		string(e.Sentiment),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryDeleteEvent(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow translates "zero rows affected" into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
