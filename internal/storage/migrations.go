package storage

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS targets (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	url                 TEXT    NOT NULL,
	name                TEXT    NOT NULL DEFAULT '',
	owner_user_id       INTEGER NOT NULL DEFAULT 0,
	check_interval_mins INTEGER NOT NULL DEFAULT 5,
	last_status         INTEGER,
	last_checked_at     TEXT,
	last_response_ms    INTEGER,
	consec_failures     INTEGER NOT NULL DEFAULT 0,
	alert_active        INTEGER NOT NULL DEFAULT 0,
	uptime_score        REAL    NOT NULL DEFAULT 100,
	created_at          TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
	updated_at          TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS check_logs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	target_id        INTEGER NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
	status_code      INTEGER,
	response_time_ms INTEGER,
	passed           INTEGER NOT NULL,
	sms_alert_number TEXT    NOT NULL DEFAULT '',
	created_at       TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_check_logs_target_id ON check_logs(target_id, created_at DESC);

CREATE TABLE IF NOT EXISTS alert_settings (
	id              INTEGER PRIMARY KEY CHECK (id = 1),
	primary_email   TEXT    NOT NULL DEFAULT '',
	secondary_email TEXT    NOT NULL DEFAULT '',
	alert_threshold INTEGER NOT NULL DEFAULT 2,
	sms_numbers     TEXT    NOT NULL DEFAULT '[]',
	updated_at      TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
`

type migration struct {
	version int
	sql     string
}

// migrations are applied in order on top of the base schema. The base
// schema always reflects the latest version for fresh databases.
var migrations = []migration{}
