package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sitewatch/internal/validate"
)

const targetColumns = `id, url, name, owner_user_id, check_interval_mins, last_status,
	last_checked_at, last_response_ms, consec_failures, alert_active, uptime_score,
	created_at, updated_at`

func scanTarget(row scanner) (*Target, error) {
	var t Target
	var lastStatus sql.NullInt64
	var lastChecked sql.NullString
	var lastResp sql.NullInt64
	var createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.URL, &t.Name, &t.OwnerUserID, &t.CheckInterval, &lastStatus,
		&lastChecked, &lastResp, &t.ConsecFails, &t.AlertActive, &t.UptimeScore,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if lastStatus.Valid {
		code := int(lastStatus.Int64)
		t.LastStatus = &code
	}
	if lastResp.Valid {
		ms := lastResp.Int64
		t.LastRespMs = &ms
	}
	t.LastCheckedAt = parseTimePtr(lastChecked)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

func (s *SQLiteStore) CreateTarget(ctx context.Context, t *Target) error {
	if err := validate.Target(t.URL, t.CheckInterval); err != nil {
		return err
	}
	now := formatTime(time.Now())
	res, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO targets (url, name, owner_user_id, check_interval_mins, uptime_score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 100, ?, ?)`,
		t.URL, t.Name, t.OwnerUserID, t.CheckInterval, now, now,
	)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	t.UptimeScore = 100
	t.CreatedAt = parseTime(now)
	t.UpdatedAt = parseTime(now)
	return nil
}

func (s *SQLiteStore) GetTarget(ctx context.Context, id int64) (*Target, error) {
	row := s.readDB.QueryRowContext(ctx,
		`SELECT `+targetColumns+` FROM targets WHERE id = ?`, id)
	return scanTarget(row)
}

func (s *SQLiteStore) ListTargets(ctx context.Context) ([]*Target, error) {
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT `+targetColumns+` FROM targets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (s *SQLiteStore) UpdateTarget(ctx context.Context, t *Target) error {
	if err := validate.Target(t.URL, t.CheckInterval); err != nil {
		return err
	}
	now := formatTime(time.Now())
	res, err := s.writeDB.ExecContext(ctx,
		`UPDATE targets SET url=?, name=?, owner_user_id=?, check_interval_mins=?, updated_at=?
		 WHERE id=?`,
		t.URL, t.Name, t.OwnerUserID, t.CheckInterval, now, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update target: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	t.UpdatedAt = parseTime(now)
	return nil
}

func (s *SQLiteStore) DeleteTarget(ctx context.Context, id int64) error {
	res, err := s.writeDB.ExecContext(ctx, `DELETE FROM targets WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete target: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateTargetStatus writes the summary fields recomputed after a check.
// It never touches url, interval or ownership.
func (s *SQLiteStore) UpdateTargetStatus(ctx context.Context, id int64, u StatusUpdate) error {
	var lastStatus any
	if u.LastStatus != nil {
		lastStatus = *u.LastStatus
	}
	_, err := s.writeDB.ExecContext(ctx,
		`UPDATE targets SET last_status=?, last_checked_at=?, last_response_ms=?,
		        consec_failures=?, alert_active=?, uptime_score=?, updated_at=?
		 WHERE id=?`,
		lastStatus, formatTime(u.LastCheckedAt), u.LastRespMs,
		u.ConsecFails, boolToInt(u.AlertActive), u.UptimeScore, formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("update target status: %w", err)
	}
	return nil
}
