// Package expiry implements the background check that notifies the user
// about tokens that are about to expire or have expired.
//
// Each run lists the tokens expiring within the lookahead window, classifies
// them (seven days, one day, expired), skips pairs already recorded in the
// notification ledger, shows a desktop notification and records it once it
// was displayed. A failure on one token is logged and the run moves on.
package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/host"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/repositories/notifications"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultInitialDelay  = 5 * time.Second
	DefaultInterval      = 6 * time.Hour
	DefaultLookaheadDays = 365
)

// Options tune the scheduler. Zero fields take the defaults.
type Options struct {
	InitialDelay  time.Duration
	Interval      time.Duration
	LookaheadDays int
	// Location decides which calendar day "today" is. Defaults to time.Local.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.InitialDelay <= 0 {
		o.InitialDelay = DefaultInitialDelay
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.LookaheadDays <= 0 {
		o.LookaheadDays = DefaultLookaheadDays
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Scheduler runs expiry checks.
type Scheduler struct {
	ledger   notifications.Ledger
	notifier host.Notifier
	clock    clockwork.Clock
	log      logging.Logger
	opts     Options
}

func NewScheduler(ledger notifications.Ledger, notifier host.Notifier, clock clockwork.Clock, log logging.Logger, opts Options) *Scheduler {
	return &Scheduler{
		ledger:   ledger,
		notifier: notifier,
		clock:    clock,
		log:      log,
		opts:     opts.withDefaults(),
	}
}

// Today is the current calendar date in the scheduler's location.
func (s *Scheduler) Today() models.Date {
	return models.DateOf(s.clock.Now().In(s.opts.Location))
}

// CheckExpiringTokens performs one run and returns how many notifications
// were newly displayed. Only a failure to list tokens is returned as an
// error; per-token failures are logged. If the context is canceled the run
// stops after the token in progress.
func (s *Scheduler) CheckExpiringTokens(ctx context.Context) (int, error) {
	log := s.log.With("run_id", uuid.NewString())

	if !s.notifier.IsSupported() {
		log.Debug(ctx, "notifications not supported, skipping expiry check")
		return 0, nil
	}

	today := s.Today()
	list, err := s.ledger.ListExpiring(ctx, today.AddDays(s.opts.LookaheadDays))
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring tokens: %w", err)
	}
	log.Debug(ctx, "expiry check started", "today", today.String(), "candidates", len(list))

	work := context.WithoutCancel(ctx)
	sent := 0
	for _, tok := range list {
		if ctx.Err() != nil {
			log.Info(ctx, "expiry check interrupted", "sent", sent)
			break
		}

		shown, err := s.notify(work, today, tok)
		if shown {
			sent++
		}
		if err != nil {
			log.Error(ctx, "expiry notification failed", "token_id", tok.ID, "error", err)
		}
	}

	log.Info(ctx, "expiry check finished", "sent", sent)
	return sent, nil
}

// notify handles one token. It reports whether a notification was shown.
func (s *Scheduler) notify(ctx context.Context, today models.Date, tok models.ExpiringToken) (bool, error) {
	days := today.DaysUntil(tok.ExpiryDate)
	category, due := Classify(days)
	if !due {
		return false, nil
	}

	already, err := s.ledger.HasBeenSent(ctx, tok.ID, category)
	if err != nil {
		return false, err
	}
	if already {
		return false, nil
	}

	msg := Message(tok, category)
	res := s.notifier.Show(ctx, msg)
	if !res.OK() {
		return false, fmt.Errorf("notification not displayed: %s", res.Reason)
	}

	rec := &models.NotificationRecord{
		TokenID:          tok.ID,
		Category:         category,
		Message:          msg.Title + ": " + msg.Body,
		DaysBeforeExpiry: days,
		SentAt:           s.clock.Now(),
	}
	if err := s.ledger.Record(ctx, rec); err != nil {
		return true, fmt.Errorf("notification shown but not recorded: %w", err)
	}

	s.log.Debug(ctx, "expiry notification sent", "token_id", tok.ID, "category", string(category), "days", days)
	return true, nil
}

// Run checks once after the initial delay and then every interval until ctx
// is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info(ctx, "expiry scheduler started",
		"initial_delay", s.opts.InitialDelay.String(),
		"interval", s.opts.Interval.String(),
		"lookahead_days", s.opts.LookaheadDays)

	select {
	case <-s.clock.After(s.opts.InitialDelay):
		s.runOnce(ctx)
	case <-ctx.Done():
		s.log.Info(ctx, "expiry scheduler stopped")
		return
	}

	ticker := s.clock.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.runOnce(ctx)
		case <-ctx.Done():
			s.log.Info(ctx, "expiry scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.CheckExpiringTokens(ctx); err != nil {
		s.log.Error(ctx, "expiry check failed", "error", err)
	}
}
