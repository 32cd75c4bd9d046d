package reporting

import "github.com/SscSPs/cashflow_app/internal/core/domain"

// FilterByDateAndType keeps live transactions dated inside r (bounds
// included) and, when t is not empty, of type t. Missing bounds default to
// the current month. Transactions with an unparsable date never match.
// The input is not modified and its order is preserved.
func (e *Engine) FilterByDateAndType(txns []domain.Transaction, r domain.DateRange, t domain.CategoryType) []domain.Transaction {
	r = e.NormalizeRange(r)
	out := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.IsDeleted() {
			continue
		}
		if t != "" && tx.CategoryType != t {
			continue
		}
		day, ok := tx.Day()
		if !ok || !r.Contains(day) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Live drops soft-deleted transactions without any other filtering.
func Live(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if !tx.IsDeleted() {
			out = append(out, tx)
		}
	}
	return out
}
