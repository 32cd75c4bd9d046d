package models

// Category is the persisted form of a category row. A NULL user_id marks a
// global category.
type Category struct {
	ID     int64   `db:"id"`
	Name   string  `db:"name"`
	Type   string  `db:"type"`
	UserID *string `db:"user_id"`
}
