package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/report"
	"go.uber.org/zap"
)

// OrderLineReader fetches joined order rows for a half-open time interval
type OrderLineReader interface {
	ListOrdersInRange(ctx context.Context, start, end time.Time) ([]models.OrderLine, error)
}

// ReportService builds weekly reports from stored orders
type ReportService struct {
	orders OrderLineReader
	loc    *time.Location
	log    *zap.Logger
}

// NewReportService creates a report service. Report dates are interpreted in loc;
// a nil loc means UTC.
func NewReportService(orders OrderLineReader, loc *time.Location, log *zap.Logger) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{orders: orders, loc: loc, log: log}
}

// Location returns the time zone report dates are interpreted in
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// ParseRange parses YYYY-MM-DD start and end dates in the service's time zone
func (s *ReportService) ParseRange(start, end string) (report.Range, error) {
	return report.ParseRange(start, end, s.loc)
}

// Weekly fetches every order placed between r.Start and the end of r.End and aggregates them
func (s *ReportService) Weekly(ctx context.Context, r report.Range) (models.WeeklyReport, error) {
	from, to := r.Bounds()

	lines, err := s.orders.ListOrdersInRange(ctx, from, to)
	if err != nil {
		return models.WeeklyReport{}, fmt.Errorf("failed to load orders for report: %w", err)
	}

	rep := report.Aggregate(lines)
	rep.Start = r.Start
	rep.End = r.End

	s.log.Debug("weekly report generated",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("orders", len(lines)),
		zap.Int("quantity", rep.TotalQuantity),
	)
	return rep, nil
}
