package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/cafepos/internal/config"
	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ReportExporter appends closed-out days to a spreadsheet the owner reads.
type ReportExporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

type appender interface {
	Append(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository implements ReportExporter using the official Google Sheets API.
type GoogleSheetRepository struct {
	rows        appender
	reportRange string
	logger      *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed exporter.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return newRepository(&valuesAppender{service: service, spreadsheetID: cfg.SpreadsheetID}, cfg.ReportRange, logger), nil
}

func newRepository(rows appender, reportRange string, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{rows: rows, reportRange: reportRange, logger: logger}
}

// AppendDailyReport writes one row per Z report:
// date, sales, orders, first, last, returns, voids, discards.
func (r *GoogleSheetRepository) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	if err := r.rows.Append(ctx, r.reportRange, dailyReportRow(report)); err != nil {
		return err
	}
	r.logger.Debug("z report exported", zap.Time("date", report.Date), zap.String("range", r.reportRange))
	return nil
}

func dailyReportRow(report models.DailyReport) []interface{} {
	first, last := "", ""
	if report.FirstOrder != nil {
		first = report.FirstOrder.Format("15:04:05")
	}
	if report.LastOrder != nil {
		last = report.LastOrder.Format("15:04:05")
	}
	return []interface{}{
		report.Date.Format(models.DateLayout),
		fmt.Sprintf("%.2f", report.TotalSales),
		report.OrderCount,
		first,
		last,
		fmt.Sprintf("%.2f", report.Returns),
		report.Voids,
		report.Discards,
	}
}

type valuesAppender struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// Append adds values as a new row below the data in sheetRange.
func (a *valuesAppender) Append(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}
	return nil
}
