package domain

// Category labels transactions for reporting. Its type must match the
// direction of the transactions it is applied to.
type Category struct {
	CategoryID   string          `json:"categoryID"` // Primary key (UUID)
	UserID       string          `json:"userID"`     // Owner, FK -> users.user_id
	Name         string          `json:"name"`       // Unique per owner
	CategoryType TransactionType `json:"categoryType"`
	AuditFields
}
