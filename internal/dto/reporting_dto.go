package dto

import (
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/shopspring/decimal"
)

// ReportParams are the query parameters shared by the report endpoints.
// Absent dates default to the current month; an absent year to the current
// year; an absent limit to the configured top spending cap.
type ReportParams struct {
	StartDate        string `form:"startDate" binding:"omitempty,isodate"`
	EndDate          string `form:"endDate" binding:"omitempty,isodate"`
	CategoryType     string `form:"categoryType" binding:"omitempty,categorytype"`
	Year             int    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Limit            *int   `form:"limit" binding:"omitempty,min=0"`
	Seq              uint64 `form:"seq"`
	WithTransactions bool   `form:"withTransactions"`
}

// ParseDateRange parses optional YYYY-MM-DD bounds.
func ParseDateRange(start, end string) (domain.DateRange, error) {
	var r domain.DateRange
	if start != "" {
		d, err := time.Parse(domain.DateLayout, start)
		if err != nil {
			return r, apperrors.NewValidationFailedError("invalid startDate format, use YYYY-MM-DD")
		}
		r.StartDate = d
	}
	if end != "" {
		d, err := time.Parse(domain.DateLayout, end)
		if err != nil {
			return r, apperrors.NewValidationFailedError("invalid endDate format, use YYYY-MM-DD")
		}
		r.EndDate = d
	}
	return r, r.Validate()
}

// ToReportRequest converts the query into a service request.
func (p ReportParams) ToReportRequest(defaultLimit int, session string) (domain.ReportRequest, error) {
	r, err := ParseDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return domain.ReportRequest{}, err
	}
	t, err := domain.ParseCategoryType(p.CategoryType)
	if err != nil {
		return domain.ReportRequest{}, err
	}
	limit := defaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	return domain.ReportRequest{
		Filter: domain.ReportFilter{
			Range:        r,
			CategoryType: t,
			Year:         p.Year,
			TopLimit:     limit,
		},
		Seq:              p.Seq,
		Session:          session,
		WithTransactions: p.WithTransactions,
	}, nil
}

// FlowResponse is the inflow and outflow of a period.
type FlowResponse struct {
	Inflow           decimal.Decimal `json:"inflow"`
	Outflow          decimal.Decimal `json:"outflow"`
	InflowFormatted  string          `json:"inflowFormatted"`
	OutflowFormatted string          `json:"outflowFormatted"`
}

// ToFlowResponse converts flow totals.
func ToFlowResponse(f domain.FlowTotals) FlowResponse {
	return FlowResponse{
		Inflow:           f.Inflow,
		Outflow:          f.Outflow,
		InflowFormatted:  reporting.FormatRupiah(f.Inflow),
		OutflowFormatted: reporting.FormatRupiah(f.Outflow),
	}
}

// BalanceResponse is the lifetime balance with the flow of the requested period.
type BalanceResponse struct {
	StartDate        string          `json:"startDate"`
	EndDate          string          `json:"endDate"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balanceFormatted"`
	Flow             FlowResponse    `json:"flow"`
	PeriodFlow       FlowResponse    `json:"periodFlow"`
}

// ToBalanceResponse converts a balance summary.
func ToBalanceResponse(b *domain.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		StartDate:        formatDay(b.Range.StartDate),
		EndDate:          formatDay(b.Range.EndDate),
		Balance:          b.Balance,
		BalanceFormatted: reporting.FormatRupiah(b.Balance),
		Flow:             ToFlowResponse(b.Flow),
		PeriodFlow:       ToFlowResponse(b.PeriodFlow),
	}
}

// BarChartEntryResponse is one month of the spending series.
type BarChartEntryResponse struct {
	Label        string          `json:"label"`
	Month        int             `json:"month"`
	Total        decimal.Decimal `json:"total"`
	CompactLabel string          `json:"compactLabel"`
}

// MonthlySeriesResponse is the spending series of a year.
type MonthlySeriesResponse struct {
	Year   int                     `json:"year"`
	Series []BarChartEntryResponse `json:"series"`
	Years  []int                   `json:"years"`
}

// ToBarChartResponses converts bar entries, never returning nil.
func ToBarChartResponses(entries []domain.BarChartEntry) []BarChartEntryResponse {
	res := make([]BarChartEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = BarChartEntryResponse{
			Label:        e.Label,
			Month:        int(e.Month),
			Total:        e.Total,
			CompactLabel: reporting.FormatCompact(e.Total),
		}
	}
	return res
}

// PieChartEntryResponse is one slice of the breakdown.
type PieChartEntryResponse struct {
	Title          string          `json:"title"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Percentage     float64         `json:"percentage"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
}

// ToPieChartResponses converts pie entries, never returning nil.
func ToPieChartResponses(entries []domain.PieChartEntry) []PieChartEntryResponse {
	res := make([]PieChartEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = PieChartEntryResponse{
			Title:          e.Title,
			Total:          e.Total,
			TotalFormatted: reporting.FormatRupiah(e.Total),
			Percentage:     e.Percentage,
			Color:          e.Color,
			Icon:           e.Icon,
		}
	}
	return res
}

// CategorySummaryResponse is one ranked category.
type CategorySummaryResponse struct {
	CategoryID     *int64                `json:"categoryId"`
	Title          string                `json:"title"`
	Total          decimal.Decimal       `json:"total"`
	TotalFormatted string                `json:"totalFormatted"`
	Percentage     float64               `json:"percentage"`
	Color          string                `json:"color"`
	Icon           string                `json:"icon"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
}

// ToCategorySummaryResponses converts summaries, never returning nil.
func ToCategorySummaryResponses(summaries []domain.CategorySummary) []CategorySummaryResponse {
	res := make([]CategorySummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = CategorySummaryResponse{
			CategoryID:     s.CategoryID,
			Title:          s.Title,
			Total:          s.Total,
			TotalFormatted: reporting.FormatRupiah(s.Total),
			Percentage:     s.Percentage,
			Color:          s.Color,
			Icon:           s.Icon,
		}
		if s.Transactions != nil {
			res[i].Transactions = ToTransactionResponses(s.Transactions)
		}
	}
	return res
}

// ReportResponse is the whole dashboard.
type ReportResponse struct {
	Seq              uint64                    `json:"seq,omitempty"`
	StartDate        string                    `json:"startDate"`
	EndDate          string                    `json:"endDate"`
	CategoryType     string                    `json:"categoryType,omitempty"`
	Year             int                       `json:"year"`
	Balance          decimal.Decimal           `json:"balance"`
	BalanceFormatted string                    `json:"balanceFormatted"`
	Flow             FlowResponse              `json:"flow"`
	PeriodFlow       FlowResponse              `json:"periodFlow"`
	BarSeries        []BarChartEntryResponse   `json:"barSeries"`
	PieSeries        []PieChartEntryResponse   `json:"pieSeries"`
	TopSpending      []CategorySummaryResponse `json:"topSpending"`
}

// ToReportResponse converts an assembled report.
func ToReportResponse(r *domain.Report, seq uint64) ReportResponse {
	return ReportResponse{
		Seq:              seq,
		StartDate:        formatDay(r.Filter.Range.StartDate),
		EndDate:          formatDay(r.Filter.Range.EndDate),
		CategoryType:     string(r.Filter.CategoryType),
		Year:             r.Year,
		Balance:          r.Balance,
		BalanceFormatted: reporting.FormatRupiah(r.Balance),
		Flow:             ToFlowResponse(r.Flow),
		PeriodFlow:       ToFlowResponse(r.PeriodFlow),
		BarSeries:        ToBarChartResponses(r.BarSeries),
		PieSeries:        ToPieChartResponses(r.PieSeries),
		TopSpending:      ToCategorySummaryResponses(r.TopSpending),
	}
}
