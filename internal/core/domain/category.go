package domain

// Category is a named classification. A nil UserID marks a global category
// visible to every user.
type Category struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Type   CategoryType `json:"type"`
	UserID *string      `json:"userId"`
}

// IsGlobal reports whether the category is shared by all users.
func (c Category) IsGlobal() bool {
	return c.UserID == nil
}

// VisibleTo reports whether userID may see the category.
func (c Category) VisibleTo(userID string) bool {
	return c.UserID == nil || *c.UserID == userID
}

// CategoryStyle is the display metadata attached to a category name.
type CategoryStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
