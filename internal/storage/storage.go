package storage

import (
	"context"
	"time"
)

// Store defines the complete storage interface.
type Store interface {
	// Targets
	CreateTarget(ctx context.Context, t *Target) error
	GetTarget(ctx context.Context, id int64) (*Target, error)
	ListTargets(ctx context.Context) ([]*Target, error)
	UpdateTarget(ctx context.Context, t *Target) error
	DeleteTarget(ctx context.Context, id int64) error

	// Target status (written by the monitor after each check)
	UpdateTargetStatus(ctx context.Context, id int64, u StatusUpdate) error

	// Check logs
	InsertCheckLog(ctx context.Context, l *CheckLog) error
	ListCheckLogs(ctx context.Context, targetID int64, limit int) ([]*CheckLog, error)
	RecentOutcomes(ctx context.Context, targetID int64, limit int) ([]bool, error)
	PurgeOldLogs(ctx context.Context, before time.Time) (int64, error)

	// Alert settings
	LoadAlertSettings(ctx context.Context) (*AlertSettings, error)
	SaveAlertSettings(ctx context.Context, s *AlertSettings) error

	Close() error
}
