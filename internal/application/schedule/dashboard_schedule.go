package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
)

// DashboardScheduler emits TimerTick events to the dashboard at a fixed period
type DashboardScheduler struct {
	cron          *cron.Cron
	useCase       dashboard.UseCase
	refreshPeriod time.Duration
	ctx           context.Context
}

// NewDashboardScheduler creates a scheduler refreshing the selected city every refreshPeriod
func NewDashboardScheduler(useCase dashboard.UseCase, refreshPeriod time.Duration) *DashboardScheduler {
	return &DashboardScheduler{
		cron:          cron.New(),
		useCase:       useCase,
		refreshPeriod: refreshPeriod,
		ctx:           context.Background(),
	}
}

// InitDashboardScheduleTasks registers the refresh task and starts the cron. When refreshNow is set the first
// tick runs immediately in the background instead of one period later.
func (s *DashboardScheduler) InitDashboardScheduleTasks(ctx context.Context, refreshNow bool) error {
	if s.refreshPeriod <= 0 {
		return fmt.Errorf("invalid refresh period %s", s.refreshPeriod)
	}
	s.ctx = ctx

	if _, err := s.cron.AddFunc(s.CronExpression(), s.ExecuteScheduledTask); err != nil {
		log.Error(msg.GetMessage("dashboard.cron.failed", err))
		return fmt.Errorf("failed to schedule dashboard refresh: %w", err)
	}

	s.cron.Start()
	log.Infof("Dashboard scheduler started with cron expression: %s", s.CronExpression())

	if refreshNow {
		go s.ExecuteScheduledTask()
	}
	return nil
}

// CronExpression is the robfig/cron descriptor for the refresh period
func (s *DashboardScheduler) CronExpression() string {
	return "@every " + s.refreshPeriod.String()
}

// ExecuteScheduledTask refreshes the selected city
func (s *DashboardScheduler) ExecuteScheduledTask() {
	tickID := uuid.New().String()

	log.Info(msg.GetMessage("dashboard.cron.start", tickID), zap.String("tick_id", tickID))
	viewModel := s.useCase.Handle(s.ctx, dashboard.TimerTick{})
	log.Info(msg.GetMessage("dashboard.cron.end", tickID),
		zap.String("tick_id", tickID),
		zap.String("request_id", viewModel.RequestID),
		zap.String("status", string(viewModel.Status)))
}

// Stop gracefully stops the scheduler, waiting for a running tick to finish
func (s *DashboardScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
