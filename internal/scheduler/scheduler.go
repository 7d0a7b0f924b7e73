package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
	"github.com/mamadbah2/cafepos/internal/service/reporting"
)

// ZReporter computes the close-out for a business date.
type ZReporter interface {
	ZReport(ctx context.Context, date models.EffectiveDate) (models.ZReport, error)
}

// SnapshotStore keeps one Z report per day.
type SnapshotStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Exporter publishes Z reports outside the register.
type Exporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier sends the plain-text summary to the manager.
type Notifier interface {
	Notify(ctx context.Context, body string) (string, error)
}

// Sinks are the optional destinations of the nightly report. Nil entries are skipped.
type Sinks struct {
	Snapshots SnapshotStore
	Exporter  Exporter
	Notifier  Notifier
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	reports ZReporter
	today   func() models.EffectiveDate
	sinks   Sinks
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

// NewScheduler creates a scheduler that closes out the business date returned
// by today on every tick of spec, evaluated in loc.
func NewScheduler(spec string, loc *time.Location, reports ZReporter, today func() models.EffectiveDate, sinks Sinks, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		spec:    spec,
		reports: reports,
		today:   today,
		sinks:   sinks,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// Start registers the nightly job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.closeOutDay); err != nil {
		return fmt.Errorf("schedule z report %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) closeOutDay() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.CloseOut(ctx, s.today()); err != nil {
		s.logger.Error("nightly z report failed", zap.Error(err))
	}
}

// CloseOut computes the Z report for date and hands it to every configured
// sink. A failing sink does not stop the others.
func (s *Scheduler) CloseOut(ctx context.Context, date models.EffectiveDate) error {
	s.logger.Info("generating z report", zap.Stringer("date", date))

	z, err := s.reports.ZReport(ctx, date)
	if err != nil {
		return fmt.Errorf("z report for %s: %w", date, err)
	}
	snapshot := models.NewDailyReport(z, date.StartOfDay(s.loc), s.now())

	if s.sinks.Snapshots != nil {
		if err := s.sinks.Snapshots.SaveDailyReport(ctx, snapshot); err != nil {
			s.logger.Error("failed to store z report", zap.Error(err))
		}
	}

	if s.sinks.Exporter != nil {
		if err := s.sinks.Exporter.AppendDailyReport(ctx, snapshot); err != nil {
			s.logger.Error("failed to export z report", zap.Error(err))
		}
	}

	if s.sinks.Notifier != nil {
		if _, err := s.sinks.Notifier.Notify(ctx, reporting.SummarizeZReport(z)); err != nil {
			s.logger.Error("failed to send z report", zap.Error(err))
		} else {
			s.logger.Info("z report sent successfully")
		}
	}

	return nil
}
