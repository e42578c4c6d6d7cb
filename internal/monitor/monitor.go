// Package monitor drives the uptime polling loop: one global tick,
// per-target due checks, probe execution and the failure/recovery alert
// state machine.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"sitewatch/internal/analytics"
	"sitewatch/internal/probe"
	"sitewatch/internal/storage"
)

// Config holds the poll-loop tuning knobs, read once at startup.
type Config struct {
	TickInterval  time.Duration // cadence of the global tick
	DueSlop       time.Duration // tolerance for tick jitter in the due predicate
	ScoreWindow   int           // recent logs considered for the cached uptime score
	MaxConcurrent int           // probe fan-out cap within a tick
}

// Prober executes one check against a URL.
type Prober interface {
	Check(ctx context.Context, url string) *probe.Result
}

// Notifier dispatches threshold alerts. Implementations must swallow
// transport failures; the loop does not check for them.
type Notifier interface {
	SendDownAlert(ctx context.Context, target *storage.Target, result *probe.Result, settings *storage.AlertSettings, failureCount int)
	SendRecoveryAlert(ctx context.Context, target *storage.Target, result *probe.Result, settings *storage.AlertSettings)
}

// Monitor owns the tick loop. One instance runs per process; targets
// are fanned out within a tick, never across processes.
type Monitor struct {
	store    storage.Store
	prober   Prober
	alerts   Notifier
	cfg      Config
	limiter  *rate.Limiter
	logger   *slog.Logger
	inFlight atomic.Bool
}

func New(store storage.Store, prober Prober, alerts Notifier, cfg Config, limiter *rate.Limiter, logger *slog.Logger) *Monitor {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	return &Monitor{
		store:   store,
		prober:  prober,
		alerts:  alerts,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

// Run ticks immediately, then on every TickInterval until ctx is
// cancelled. A firing that arrives while the previous tick is still in
// flight is skipped, not queued.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	m.startTick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.startTick(ctx, now)
		}
	}
}

func (m *Monitor) startTick(ctx context.Context, now time.Time) {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.logger.Warn("previous tick still running, skipping this firing")
		return
	}
	go func() {
		defer m.inFlight.Store(false)
		m.tick(ctx, now)
	}()
}

// tick processes every due target once. Loop-level load failures abort
// the tick; the timer keeps firing so the next tick retries from
// scratch.
func (m *Monitor) tick(ctx context.Context, now time.Time) {
	targets, err := m.store.ListTargets(ctx)
	if err != nil {
		m.logger.Error("tick: list targets", "error", err)
		return
	}

	// Settings are fetched fresh each tick and shared read-only across
	// all targets in it, so an admin edit takes effect on the next tick.
	settings, err := m.store.LoadAlertSettings(ctx)
	if err != nil {
		m.logger.Error("tick: load alert settings", "error", err)
		return
	}

	sem := make(chan struct{}, m.cfg.MaxConcurrent)
	var wg sync.WaitGroup
	checked := 0
	for _, t := range targets {
		if !due(now, t.LastCheckedAt, t.CheckInterval, m.cfg.DueSlop) {
			continue
		}
		checked++
		wg.Add(1)
		sem <- struct{}{}
		go func(t *storage.Target) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("target check panicked", "url", t.URL, "panic", r)
				}
			}()
			m.processTarget(ctx, t, settings, now)
		}(t)
	}
	wg.Wait()

	m.logger.Debug("tick completed", "targets", len(targets), "checked", checked)
}

// due reports whether a target should be checked this tick. The slop
// tolerates tick jitter so a check due "in a few milliseconds" is not
// pushed a whole interval out. A never-checked target is always due.
func due(now time.Time, lastChecked *time.Time, intervalMins int, slop time.Duration) bool {
	if lastChecked == nil {
		return true
	}
	interval := time.Duration(intervalMins) * time.Minute
	return now.Sub(*lastChecked) >= interval-slop
}

func (m *Monitor) processTarget(ctx context.Context, t *storage.Target, settings *storage.AlertSettings, now time.Time) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return
		}
	}

	result := m.prober.Check(ctx, t.URL)

	nextFailures := NextFailures(result.Passed, t.ConsecFails)
	alertActive, decision := Transition(t.AlertActive, result.Passed, nextFailures, settings.AlertThreshold)

	switch decision {
	case DecideDown:
		m.alerts.SendDownAlert(ctx, t, result, settings, nextFailures)
	case DecideRecovery:
		m.alerts.SendRecoveryAlert(ctx, t, result, settings)
	}

	var smsNumber string
	if len(settings.SMSNumbers) > 0 {
		smsNumber = settings.SMSNumbers[0]
	}

	entry := &storage.CheckLog{
		TargetID:       t.ID,
		Passed:         result.Passed,
		SMSAlertNumber: smsNumber,
	}
	if result.StatusCode != 0 {
		code := result.StatusCode
		entry.StatusCode = &code
	}
	ms := result.ResponseTimeMs
	entry.ResponseTimeMs = &ms

	if err := m.store.InsertCheckLog(ctx, entry); err != nil {
		m.logger.Error("insert check log", "url", t.URL, "error", err)
	}

	// The log write precedes the score read so the outcome just recorded
	// is part of the cached score.
	score := t.UptimeScore
	outcomes, err := m.store.RecentOutcomes(ctx, t.ID, m.cfg.ScoreWindow)
	if err != nil {
		m.logger.Error("load recent outcomes", "url", t.URL, "error", err)
	} else {
		score = analytics.Score(outcomes)
	}

	update := storage.StatusUpdate{
		LastStatus:    entry.StatusCode,
		LastCheckedAt: now,
		LastRespMs:    result.ResponseTimeMs,
		ConsecFails:   nextFailures,
		AlertActive:   alertActive,
		UptimeScore:   score,
	}
	if err := m.store.UpdateTargetStatus(ctx, t.ID, update); err != nil {
		m.logger.Error("update target status", "url", t.URL, "error", err)
	}

	m.logger.Debug("check completed",
		"url", t.URL,
		"passed", result.Passed,
		"status", result.StatusCode,
		"response_ms", result.ResponseTimeMs,
		"failures", nextFailures,
		"decision", decision.String(),
	)
}
