// Package scheduler runs the follow-up reminder job: a cron that scans
// open leads for due follow-ups and raises a push notification for each.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/client"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/shared"
)

const scanPageSize = 100

// FollowupScheduler scans leads on a cron schedule and creates reminder
// notifications for due follow-ups. A lead is reminded once per process
// lifetime unless its follow-up is rescheduled.
type FollowupScheduler struct {
	api      *client.APIClient
	schedule string
	logger   *zap.Logger
	now      func() time.Time

	cron    *cron.Cron
	entryID cron.EntryID

	mu       sync.Mutex
	reminded map[string]string // lead id -> followup date/time it was reminded for
}

// FollowupOption is a functional option for configuring the scheduler
type FollowupOption func(*FollowupScheduler)

// WithFollowupLogger sets the logger for the scheduler
func WithFollowupLogger(logger *zap.Logger) FollowupOption {
	return func(s *FollowupScheduler) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) FollowupOption {
	return func(s *FollowupScheduler) {
		s.now = now
	}
}

// NewFollowupScheduler creates a scheduler with the given cron expression
func NewFollowupScheduler(api *client.APIClient, schedule string, opts ...FollowupOption) *FollowupScheduler {
	s := &FollowupScheduler{
		api:      api,
		schedule: schedule,
		logger:   zap.NewNop(),
		now:      time.Now,
		reminded: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the cron entry and begins scanning
func (s *FollowupScheduler) Start() error {
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	id, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Scan(ctx); err != nil {
			s.logger.Warn("followup scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.cron.Start()
	s.logger.Info("followup scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron and waits for a running scan to finish
func (s *FollowupScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("followup scheduler stopped")
}

// Scan walks all leads and raises a reminder for each one due now. It is
// exported so callers can trigger a pass outside the schedule.
func (s *FollowupScheduler) Scan(ctx context.Context) error {
	now := s.now()
	var due int

	filter := shared.Filter{Page: 1, Limit: scanPageSize}
	for {
		page, err := s.api.ListLeads(ctx, filter)
		if err != nil {
			return fmt.Errorf("list leads: %w", err)
		}
		for i := range page.Data {
			lead := page.Data[i]
			if !lead.DueBy(now) {
				continue
			}
			if s.alreadyReminded(&lead) {
				continue
			}
			if err := s.remind(ctx, &lead); err != nil {
				s.logger.Warn("failed to create followup reminder",
					zap.String("lead_id", lead.ID),
					zap.Error(err))
				continue
			}
			due++
		}
		if filter.Page >= page.TotalPages {
			break
		}
		filter.Page++
	}

	if due > 0 {
		s.logger.Info("followup reminders created", zap.Int("count", due))
	}
	return nil
}

func (s *FollowupScheduler) alreadyReminded(lead *crm.Lead) bool {
	key := lead.FollowupDate + " " + lead.FollowupTime
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminded[lead.ID] == key
}

func (s *FollowupScheduler) remind(ctx context.Context, lead *crm.Lead) error {
	title := "Follow-up due: " + lead.Name
	message := fmt.Sprintf("Lead %s is due for follow-up", lead.Name)
	if lead.Contact != "" {
		message += " (" + lead.Contact + ")"
	}

	env := s.api.Post(ctx, "/notifications", messaging.NewNotification(
		s.api.TenantID(), title, message, messaging.ChannelPush))
	if !env.Success {
		return fmt.Errorf("create notification: %s", env.Message)
	}

	s.mu.Lock()
	s.reminded[lead.ID] = lead.FollowupDate + " " + lead.FollowupTime
	s.mu.Unlock()
	return nil
}
