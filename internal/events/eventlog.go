package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const TypeSubmissionGraded = "SubmissionGraded"

type Event struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"type"`
	Key       string `json:"key"` // natural key: submission ID
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

// Repo appends to and reads the event_log table. The log feeds the parent
// review view: one row per graded submission.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// AppendGraded records a graded submission; payload is marshaled to JSON.
func (r *Repo) AppendGraded(ctx context.Context, submissionID string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.Append(ctx, Event{Type: TypeSubmissionGraded, Key: submissionID, DataJSON: string(buf)})
}

// Since returns events after the given offset, oldest first.
func (r *Repo) Since(ctx context.Context, offset int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT offset_id, typ, key, data, created_at FROM event_log WHERE offset_id > $1 ORDER BY offset_id ASC LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
