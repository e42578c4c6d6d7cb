package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const defaultAlertThreshold = 2

// LoadAlertSettings returns the global alert settings, inserting the
// default record (threshold 2, no recipients) when none exists yet.
func (s *SQLiteStore) LoadAlertSettings(ctx context.Context) (*AlertSettings, error) {
	settings, err := s.readAlertSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	_, err = s.writeDB.ExecContext(ctx,
		`INSERT INTO alert_settings (id, alert_threshold) VALUES (1, ?)
		 ON CONFLICT(id) DO NOTHING`, defaultAlertThreshold)
	if err != nil {
		return nil, fmt.Errorf("seed alert settings: %w", err)
	}
	return s.readAlertSettings(ctx)
}

func (s *SQLiteStore) readAlertSettings(ctx context.Context) (*AlertSettings, error) {
	var out AlertSettings
	var numbers string
	var updatedAt string
	err := s.readDB.QueryRowContext(ctx,
		`SELECT primary_email, secondary_email, alert_threshold, sms_numbers, updated_at
		 FROM alert_settings WHERE id = 1`).
		Scan(&out.PrimaryEmail, &out.SecondaryEmail, &out.AlertThreshold, &numbers, &updatedAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(numbers), &out.SMSNumbers)
	out.UpdatedAt = parseTime(updatedAt)
	return &out, nil
}

func (s *SQLiteStore) SaveAlertSettings(ctx context.Context, in *AlertSettings) error {
	if in.AlertThreshold < 1 {
		return fmt.Errorf("alert_threshold must be at least 1")
	}
	numbers, _ := json.Marshal(in.SMSNumbers)
	if in.SMSNumbers == nil {
		numbers = []byte("[]")
	}
	now := formatTime(time.Now())
	_, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO alert_settings (id, primary_email, secondary_email, alert_threshold, sms_numbers, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   primary_email=excluded.primary_email,
		   secondary_email=excluded.secondary_email,
		   alert_threshold=excluded.alert_threshold,
		   sms_numbers=excluded.sms_numbers,
		   updated_at=excluded.updated_at`,
		in.PrimaryEmail, in.SecondaryEmail, in.AlertThreshold, string(numbers), now,
	)
	if err != nil {
		return fmt.Errorf("save alert settings: %w", err)
	}
	in.UpdatedAt = parseTime(now)
	return nil
}
