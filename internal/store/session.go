package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Session represents one control session, camera start to camera stop.
type Session struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// SessionSummary is a session plus its confirmed gesture counts.
type SessionSummary struct {
	Session
	GestureCounts map[string]int `json:"gestureCounts"`
}

// SessionRepository records sessions and their confirmed gesture events.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start creates a new session and returns it.
func (r *SessionRepository) Start() (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		session.ID, session.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(id string) error {
	res, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LogGesture records one confirmed gesture transition for a session.
func (r *SessionRepository) LogGesture(sessionID, label string) error {
	_, err := r.db.Exec(
		`INSERT INTO gesture_events (session_id, label, occurred_at) VALUES (?, ?, ?)`,
		sessionID, label, time.Now().UTC(),
	)
	return err
}

// Recent returns the most recent sessions with their gesture counts,
// newest first.
func (r *SessionRepository) Recent(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at FROM sessions
		 ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var endedAt sql.NullTime

		if err := rows.Scan(&s.ID, &s.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			t := endedAt.Time
			s.EndedAt = &t
		}
		s.GestureCounts = map[string]int{}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		counts, err := r.gestureCounts(summaries[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].GestureCounts = counts
	}

	return summaries, nil
}

func (r *SessionRepository) gestureCounts(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT label, COUNT(*) FROM gesture_events
		 WHERE session_id = ? GROUP BY label`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
