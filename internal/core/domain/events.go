package domain

import "time"

// ChangeAction names what happened to a transaction.
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent is emitted after a successful write so that derived views
// (such as the spreadsheet mirror) can be refreshed.
type ChangeEvent struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	TransactionID int64        `json:"transactionId"`
	Action        ChangeAction `json:"action"`
	Date          string       `json:"date"`
	OccurredAt    time.Time    `json:"occurredAt"`
}
