package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.Event. The row must contain
// columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		description  sql.NullString
		category     sql.NullString
		priority     sql.NullString
		location     sql.NullString
		intent       sql.NullString
		sentiment    sql.NullString
		participants []byte
		entities     []byte
		keywords     []byte
	)

	err := row.Scan(
		&e.ID,
		&e.Title,
		&description,
		&e.EventDate,
		&e.Notified,
		&e.Completed,
		&category,
		&priority,
		&location,
		&participants,
		&entities,
		&keywords,
		&intent,
		&sentiment,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = description.String
	e.Category = model.Category(category.String)
	e.Priority = model.Priority(priority.String)
	e.Location = location.String
	e.Intent = model.Intent(intent.String)
	e.Sentiment = model.Sentiment(sentiment.String)
	e.Participants = decodeStrings(participants)
	e.Entities = decodeStrings(entities)
	e.Keywords = decodeStrings(keywords)

	return &e, nil
}

// jsonbStrings encodes a string slice as JSONB, with nil for an empty slice.
func jsonbStrings(values []string) []byte {
	if len(values) == 0 {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return data
}

func decodeStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}
