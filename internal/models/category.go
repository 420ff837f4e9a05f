package models

// Category is the database representation of a transaction category.
type Category struct {
	CategoryID   string `db:"category_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	CategoryType string `db:"category_type"`
	AuditFields
}
