package dto

import (
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// The owner always comes from the authenticated caller.
type CreateTransactionRequest struct {
	Total        *decimal.Decimal `json:"total" binding:"required" swaggertype:"string" example:"150000"`
	CategoryID   *int64           `json:"categoryId" example:"7"`
	CategoryType string           `json:"categoryType" binding:"required,categorytype" example:"outcome"`
	Notes        string           `json:"notes" binding:"max=500" example:"weekly groceries"`
	Date         string           `json:"date" binding:"required,isodate" example:"2024-03-05"`
}

// UpdateTransactionRequest carries the fields to change. Nil fields are
// left untouched; ClearCategory removes the category reference.
type UpdateTransactionRequest struct {
	Total         *decimal.Decimal `json:"total,omitempty" swaggertype:"string"`
	CategoryID    *int64           `json:"categoryId,omitempty"`
	ClearCategory bool             `json:"clearCategory,omitempty"`
	CategoryType  *string          `json:"categoryType,omitempty" binding:"omitempty,categorytype"`
	Notes         *string          `json:"notes,omitempty" binding:"omitempty,max=500"`
	Date          *string          `json:"date,omitempty" binding:"omitempty,isodate"`
}

// ListTransactionsParams are the query parameters of the transaction list.
type ListTransactionsParams struct {
	StartDate    string `form:"startDate" binding:"omitempty,isodate"`
	EndDate      string `form:"endDate" binding:"omitempty,isodate"`
	CategoryType string `form:"categoryType" binding:"omitempty,categorytype"`
	CategoryID   *int64 `form:"categoryId"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID           int64     `json:"id"`
	Total        string    `json:"total"`
	CategoryID   *int64    `json:"categoryId"`
	CategoryType string    `json:"categoryType"`
	Notes        string    `json:"notes"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DayGroupResponse is one day of the transaction list.
type DayGroupResponse struct {
	Date                  string                `json:"date"`
	OutcomeTotal          string                `json:"outcomeTotal"`
	OutcomeTotalFormatted string                `json:"outcomeTotalFormatted"`
	Transactions          []TransactionResponse `json:"transactions"`
}

// ListTransactionsResponse is the transaction page.
type ListTransactionsResponse struct {
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	Flow         FlowResponse          `json:"flow"`
	Transactions []TransactionResponse `json:"transactions"`
	Days         []DayGroupResponse    `json:"days"`
}

// WriteResult is the outcome of a create, update or delete.
type WriteResult struct {
	Success     bool                 `json:"success"`
	Error       string               `json:"error,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// WriteFailure builds a failed WriteResult.
func WriteFailure(message string) WriteResult {
	return WriteResult{Success: false, Error: message}
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Total:        t.Amount().String(),
		CategoryID:   t.CategoryID,
		CategoryType: string(t.CategoryType),
		Notes:        t.Notes,
		Date:         t.Date,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice, never returning nil.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(t)
	}
	return res
}

// ToListTransactionsResponse converts a listing to its response DTO.
func ToListTransactionsResponse(l *domain.TransactionListing) ListTransactionsResponse {
	days := make([]DayGroupResponse, len(l.Days))
	for i, d := range l.Days {
		days[i] = DayGroupResponse{
			Date:                  d.Date,
			OutcomeTotal:          d.OutcomeTotal.String(),
			OutcomeTotalFormatted: reporting.FormatRupiah(d.OutcomeTotal),
			Transactions:          ToTransactionResponses(d.Transactions),
		}
	}
	return ListTransactionsResponse{
		StartDate:    formatDay(l.Range.StartDate),
		EndDate:      formatDay(l.Range.EndDate),
		Flow:         ToFlowResponse(l.Flow),
		Transactions: ToTransactionResponses(l.Transactions),
		Days:         days,
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
