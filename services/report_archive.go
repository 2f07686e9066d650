package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/report"
	"go.uber.org/zap"
)

// ErrArchiveDisabled is returned when no object storage is configured
var ErrArchiveDisabled = errors.New("report archive is not configured")

// ArchivedReport locates an archived report document
type ArchivedReport struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ReportArchiver stores rendered weekly reports in object storage
type ReportArchiver struct {
	storage ObjectStorage
	now     func() time.Time
	log     *zap.Logger
}

// NewReportArchiver creates an archiver. A nil storage yields an archiver whose
// Archive always fails with ErrArchiveDisabled.
func NewReportArchiver(storage ObjectStorage, log *zap.Logger) *ReportArchiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportArchiver{storage: storage, now: time.Now, log: log}
}

// Enabled reports whether archived reports can be stored
func (a *ReportArchiver) Enabled() bool {
	return a != nil && a.storage != nil
}

// Archive uploads a rendered report PDF and returns its key and a presigned link
func (a *ReportArchiver) Archive(ctx context.Context, rep models.WeeklyReport, pdf []byte) (ArchivedReport, error) {
	if !a.Enabled() {
		return ArchivedReport{}, ErrArchiveDisabled
	}

	key := fmt.Sprintf("reports/weekly/%s_%s_%d.pdf",
		rep.Start.Format(report.DateLayout),
		rep.End.Format(report.DateLayout),
		a.now().Unix(),
	)
	if err := a.storage.PutObject(ctx, key, pdf, "application/pdf"); err != nil {
		return ArchivedReport{}, fmt.Errorf("failed to archive report: %w", err)
	}

	url, err := a.storage.PresignedURL(ctx, key)
	if err != nil {
		return ArchivedReport{}, fmt.Errorf("failed to link archived report: %w", err)
	}

	a.log.Info("weekly report archived", zap.String("key", key), zap.Int("bytes", len(pdf)))
	return ArchivedReport{Key: key, URL: url}, nil
}
