package journal

import (
	"database/sql"
	"time"
)

const selectColumns = `
	SELECT id, timestamp, action, drive, name, size,
	       reason, forced, interactive, error_message
	FROM deletions
	`

// Recent returns the N most recent entries.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	query := selectColumns + `
	ORDER BY timestamp DESC
	LIMIT ?
	`
	return j.queryEntries(query, limit)
}

// ByAction returns entries filtered by action type.
func (j *Journal) ByAction(action string) ([]Entry, error) {
	query := selectColumns + `
	WHERE action = ?
	ORDER BY timestamp DESC
	`
	return j.queryEntries(query, action)
}

// ByReason returns entries filtered by outcome reason.
func (j *Journal) ByReason(reason string) ([]Entry, error) {
	query := selectColumns + `
	WHERE reason = ?
	ORDER BY timestamp DESC
	`
	return j.queryEntries(query, reason)
}

// ByNamePattern returns entries whose filename matches a pattern
// (SQL LIKE syntax).
func (j *Journal) ByNamePattern(pattern string) ([]Entry, error) {
	query := selectColumns + `
	WHERE name LIKE ?
	ORDER BY timestamp DESC
	`
	return j.queryEntries(query, pattern)
}

// Largest returns the N largest deleted files by size.
func (j *Journal) Largest(limit int) ([]Entry, error) {
	query := selectColumns + `
	WHERE action = 'DELETE'
	ORDER BY size DESC
	LIMIT ?
	`
	return j.queryEntries(query, limit)
}

// TotalBytesDeleted returns the bytes reclaimed in a time range.
func (j *Journal) TotalBytesDeleted(start, end time.Time) (int64, error) {
	query := `
	SELECT COALESCE(SUM(size), 0)
	FROM deletions
	WHERE action = 'DELETE' AND timestamp BETWEEN ? AND ?
	`

	var total int64
	err := j.db.QueryRow(query, start, end).Scan(&total)
	return total, err
}

// CountByReason returns entry counts grouped by reason.
func (j *Journal) CountByReason() (map[string]int, error) {
	return j.countBy("reason")
}

// CountByAction returns entry counts grouped by action.
func (j *Journal) CountByAction() (map[string]int, error) {
	return j.countBy("action")
}

func (j *Journal) countBy(column string) (map[string]int, error) {
	rows, err := j.db.Query(`SELECT ` + column + `, COUNT(*) FROM deletions GROUP BY ` + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// Stats holds aggregated journal statistics.
type Stats struct {
	TotalDeleted      int
	TotalSkipped      int
	TotalErrors       int
	TotalBytesDeleted int64
	ByReason          map[string]int
	ByAction          map[string]int
	StartDate         time.Time
	EndDate           time.Time
}

// GetStats returns aggregate statistics for the last N days.
func (j *Journal) GetStats(days int) (*Stats, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -days)

	stats := &Stats{
		StartDate: since,
		EndDate:   now,
	}

	err := j.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN action = 'DELETE' THEN 1 END),
			COUNT(CASE WHEN action = 'SKIP' THEN 1 END),
			COUNT(CASE WHEN action = 'ERROR' THEN 1 END)
		FROM deletions
		WHERE timestamp >= ?
	`, since).Scan(&stats.TotalDeleted, &stats.TotalSkipped, &stats.TotalErrors)
	if err != nil {
		return nil, err
	}

	stats.TotalBytesDeleted, err = j.TotalBytesDeleted(since, now)
	if err != nil {
		return nil, err
	}

	stats.ByReason, err = j.CountByReason()
	if err != nil {
		return nil, err
	}

	stats.ByAction, err = j.CountByAction()
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// PruneOlderThan removes entries older than the given number of days.
func (j *Journal) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result, err := j.db.Exec(`DELETE FROM deletions WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (j *Journal) queryEntries(query string, args ...interface{}) ([]Entry, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var errMsg sql.NullString

		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Action, &e.Drive, &e.Name,
			&e.Size, &e.Reason, &e.Forced, &e.Interactive, &errMsg,
		)
		if err != nil {
			return nil, err
		}

		if errMsg.Valid {
			e.ErrorMsg = errMsg.String
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
