package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (s *SQLiteStore) InsertCheckLog(ctx context.Context, l *CheckLog) error {
	var statusCode, respMs any
	if l.StatusCode != nil {
		statusCode = *l.StatusCode
	}
	if l.ResponseTimeMs != nil {
		respMs = *l.ResponseTimeMs
	}
	now := formatTime(time.Now())
	res, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO check_logs (target_id, status_code, response_time_ms, passed, sms_alert_number, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.TargetID, statusCode, respMs, boolToInt(l.Passed), l.SMSAlertNumber, now,
	)
	if err != nil {
		return fmt.Errorf("insert check log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	l.CreatedAt = parseTime(now)
	return nil
}

func (s *SQLiteStore) ListCheckLogs(ctx context.Context, targetID int64, limit int) ([]*CheckLog, error) {
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT id, target_id, status_code, response_time_ms, passed, sms_alert_number, created_at
		 FROM check_logs WHERE target_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*CheckLog
	for rows.Next() {
		var l CheckLog
		var statusCode, respMs sql.NullInt64
		var createdAt string
		if err := rows.Scan(&l.ID, &l.TargetID, &statusCode, &respMs, &l.Passed, &l.SMSAlertNumber, &createdAt); err != nil {
			return nil, err
		}
		if statusCode.Valid {
			code := int(statusCode.Int64)
			l.StatusCode = &code
		}
		if respMs.Valid {
			ms := respMs.Int64
			l.ResponseTimeMs = &ms
		}
		l.CreatedAt = parseTime(createdAt)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// RecentOutcomes returns the pass/fail flags of the most recent checks,
// newest first. The score calculation is order-independent so callers
// only care about the window, not the ordering.
func (s *SQLiteStore) RecentOutcomes(ctx context.Context, targetID int64, limit int) ([]bool, error) {
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT passed FROM check_logs WHERE target_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []bool
	for rows.Next() {
		var passed bool
		if err := rows.Scan(&passed); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, passed)
	}
	return outcomes, rows.Err()
}

func (s *SQLiteStore) PurgeOldLogs(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.writeDB.ExecContext(ctx,
		`DELETE FROM check_logs WHERE created_at < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("purge check logs: %w", err)
	}
	return res.RowsAffected()
}
