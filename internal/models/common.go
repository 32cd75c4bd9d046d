package models

import "time"

// AuditFields are the bookkeeping timestamps every stored row carries.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
