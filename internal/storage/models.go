package storage

import "time"

// Target is a URL registered for periodic availability checking.
// Rows are created and deleted by the portal/admin layer; the monitor
// only reads targets and updates their status fields.
type Target struct {
	ID            int64      `json:"id"`
	URL           string     `json:"url"`
	Name          string     `json:"name"`
	OwnerUserID   int64      `json:"owner_user_id"`
	CheckInterval int        `json:"check_interval"` // minutes, one of validate.AllowedIntervals
	LastStatus    *int       `json:"last_status,omitempty"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	LastRespMs    *int64     `json:"last_response_ms,omitempty"`
	ConsecFails   int        `json:"consec_failures"`
	AlertActive   bool       `json:"alert_active"`
	UptimeScore   float64    `json:"uptime_score"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CheckLog is one executed check. Append-only: the monitor inserts and
// never updates or deletes rows. Deletion happens via target cascade or
// the retention worker.
type CheckLog struct {
	ID             int64     `json:"id"`
	TargetID       int64     `json:"target_id"`
	StatusCode     *int      `json:"status_code,omitempty"`
	ResponseTimeMs *int64    `json:"response_time_ms,omitempty"`
	Passed         bool      `json:"passed"`
	SMSAlertNumber string    `json:"sms_alert_number,omitempty"` // recipient in effect at check time, for audit
	CreatedAt      time.Time `json:"created_at"`
}

// AlertSettings is the single global alerting record, edited by an
// administrator outside this process and read once per poll tick.
type AlertSettings struct {
	PrimaryEmail   string    `json:"primary_email"`
	SecondaryEmail string    `json:"secondary_email"`
	AlertThreshold int       `json:"alert_threshold"` // consecutive failures before a down-alert fires
	SMSNumbers     []string  `json:"sms_numbers"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EmailRecipients returns the configured alert emails, skipping blanks.
func (s *AlertSettings) EmailRecipients() []string {
	var out []string
	if s.PrimaryEmail != "" {
		out = append(out, s.PrimaryEmail)
	}
	if s.SecondaryEmail != "" {
		out = append(out, s.SecondaryEmail)
	}
	return out
}

// StatusUpdate carries the per-check summary fields the monitor writes
// back onto a target after each executed check.
type StatusUpdate struct {
	LastStatus    *int
	LastCheckedAt time.Time
	LastRespMs    int64
	ConsecFails   int
	AlertActive   bool
	UptimeScore   float64
}
