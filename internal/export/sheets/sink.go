// Package sheets mirrors monthly reports into a Google spreadsheet, one tab
// per user and month.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	"github.com/SscSPs/cashflow_app/internal/export"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Sink writes reports with the Sheets API.
type Sink struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ portsexport.ReportSink = (*Sink)(nil)

// NewSink builds a sink from a service account file. An empty credentialsFile
// falls back to application default credentials.
func NewSink(ctx context.Context, spreadsheetID, credentialsFile string) (*Sink, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var creds *google.Credentials
	var err error
	if credentialsFile != "" {
		data, readErr := os.ReadFile(credentialsFile)
		if readErr != nil {
			return nil, fmt.Errorf("read credentials file: %w", readErr)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, gsheet.SpreadsheetsScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, gsheet.SpreadsheetsScope)
	}
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}

	svc, err := gsheet.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSinkWithService(svc, spreadsheetID), nil
}

// NewSinkWithService wraps an existing Sheets service.
func NewSinkWithService(svc *gsheet.Service, spreadsheetID string) *Sink {
	return &Sink{svc: svc, spreadsheetID: spreadsheetID}
}

// TabTitle names the tab holding one user's month.
func TabTitle(userID string, r domain.DateRange) string {
	return fmt.Sprintf("%s %s", userID, r.StartDate.Format("2006-01"))
}

func a1(title, cell string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(title, "'", "''"), cell)
}

// WriteMonthlyReport replaces the content of the user's month tab.
func (s *Sink) WriteMonthlyReport(ctx context.Context, userID string, report domain.Report) error {
	title := TabTitle(userID, report.Filter.Range)
	if err := s.ensureTab(ctx, title); err != nil {
		return err
	}

	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, a1(title, "A:Z"), &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear tab %q: %w", title, err)
	}

	rows := export.Rows(report)
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = r
	}
	vr := &gsheet.ValueRange{Values: values}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(title, "A1"), vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write tab %q: %w", title, err)
	}

	slog.InfoContext(ctx, "Monthly report written to sheet",
		slog.String("user_id", userID),
		slog.String("tab", title),
		slog.Int("rows", len(values)))
	return nil
}

func (s *Sink) ensureTab(ctx context.Context, title string) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: title}},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add tab %q: %w", title, err)
	}
	return nil
}
