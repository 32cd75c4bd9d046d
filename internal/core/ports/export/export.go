package export

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// ReportRenderer turns an assembled report into a downloadable document.
type ReportRenderer interface {
	Render(report domain.Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// ReportSink stores a user's monthly report somewhere outside the database.
type ReportSink interface {
	WriteMonthlyReport(ctx context.Context, userID string, report domain.Report) error
}
