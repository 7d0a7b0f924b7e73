package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

type fakeReporter struct {
	dates []models.EffectiveDate
	err   error
}

func (f *fakeReporter) ZReport(_ context.Context, date models.EffectiveDate) (models.ZReport, error) {
	f.dates = append(f.dates, date)
	if f.err != nil {
		return models.ZReport{}, f.err
	}
	return models.ZReport{Date: date.String(), TotalSales: decimal.RequireFromString("42.50"), OrderCount: 9}, nil
}

type fakeSink struct {
	saved    []models.DailyReport
	exported []models.DailyReport
	messages []string
	err      error
}

func (f *fakeSink) SaveDailyReport(_ context.Context, r models.DailyReport) error {
	f.saved = append(f.saved, r)
	return f.err
}

func (f *fakeSink) AppendDailyReport(_ context.Context, r models.DailyReport) error {
	f.exported = append(f.exported, r)
	return f.err
}

func (f *fakeSink) Notify(_ context.Context, body string) (string, error) {
	f.messages = append(f.messages, body)
	return "wamid", f.err
}

var june15 = models.EffectiveDate{Year: 2024, Month: time.June, Day: 15}

func TestCloseOut(t *testing.T) {
	reports := &fakeReporter{}
	sink := &fakeSink{}
	s := NewScheduler("0 22 * * *", time.UTC, reports, func() models.EffectiveDate { return june15 },
		Sinks{Snapshots: sink, Exporter: sink, Notifier: sink}, nil)
	s.now = func() time.Time { return time.Date(2024, time.June, 15, 22, 0, 0, 0, time.UTC) }

	require.NoError(t, s.CloseOut(context.Background(), june15))

	require.Len(t, sink.saved, 1)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), sink.saved[0].Date)
	assert.InDelta(t, 42.5, sink.saved[0].TotalSales, 1e-9)
	assert.Equal(t, sink.saved, sink.exported)
	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "$42.50 across 9 orders")
}

func TestCloseOutSinkFailuresDoNotStopOthers(t *testing.T) {
	sink := &fakeSink{err: errors.New("unavailable")}
	s := NewScheduler("0 22 * * *", nil, &fakeReporter{}, nil, Sinks{Snapshots: sink, Exporter: sink, Notifier: sink}, nil)

	require.NoError(t, s.CloseOut(context.Background(), june15))
	assert.Len(t, sink.saved, 1)
	assert.Len(t, sink.exported, 1)
	assert.Len(t, sink.messages, 1)
}

func TestCloseOutReportFailure(t *testing.T) {
	boom := errors.New("db down")
	sink := &fakeSink{}
	s := NewScheduler("0 22 * * *", nil, &fakeReporter{err: boom}, nil, Sinks{Snapshots: sink}, nil)

	assert.ErrorIs(t, s.CloseOut(context.Background(), june15), boom)
	assert.Empty(t, sink.saved)
}

func TestCloseOutUsesToday(t *testing.T) {
	reports := &fakeReporter{}
	s := NewScheduler("0 22 * * *", nil, reports, func() models.EffectiveDate { return june15 }, Sinks{}, nil)
	s.closeOutDay()
	assert.Equal(t, []models.EffectiveDate{june15}, reports.dates)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler("every night", nil, &fakeReporter{}, nil, Sinks{}, nil)
	assert.Error(t, s.Start())

	s = NewScheduler("0 22 * * *", nil, &fakeReporter{}, nil, Sinks{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
