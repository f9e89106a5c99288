package store

import (
	"database/sql"
	"time"
)

// DefaultEventLimit bounds List queries that do not specify a limit.
const DefaultEventLimit = 50

// CommandEvent represents one confirmed command in the history log.
type CommandEvent struct {
	ID        int64
	Command   string
	CreatedAt time.Time
}

// EventRepository provides access to the command history log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the command event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends a command to the history log.
func (r *EventRepository) Insert(command string) error {
	_, err := r.db.Exec(
		`INSERT INTO command_events (command, created_at) VALUES (?, ?)`,
		command, time.Now(),
	)
	return err
}

// List retrieves the most recent command events, newest first.
// Limits less than or equal to 0 fall back to DefaultEventLimit.
func (r *EventRepository) List(limit int) ([]*CommandEvent, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	rows, err := r.db.Query(
		`SELECT id, command, created_at FROM command_events
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*CommandEvent
	for rows.Next() {
		e := &CommandEvent{}
		if err := rows.Scan(&e.ID, &e.Command, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByCommand returns how many events were recorded per command.
func (r *EventRepository) CountByCommand() (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT command, COUNT(*) FROM command_events GROUP BY command`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var command string
		var count int
		if err := rows.Scan(&command, &count); err != nil {
			return nil, err
		}
		counts[command] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// Clear removes all command events.
func (r *EventRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM command_events`)
	return err
}
