package models

import "time"

// Split types accepted for a participant's share of an expense.
const (
	SplitEqual      = "equal"
	SplitExact      = "exact"
	SplitPercentage = "percentage"
)

// Participant represents a single member's share within an expense.
type Participant struct {
	ID         uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	ExpenseID  string   `json:"-" gorm:"index;type:varchar(36)"`
	UserID     string   `json:"userId" gorm:"type:varchar(36)"`
	Username   string   `json:"username"`
	Type       string   `json:"type"` // one of "equal", "exact", "percentage"
	AmountOwed *float64 `json:"amountOwed,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"` // stays nil for "exact" shares
}

// Expense represents a shared expense created by one user and split
// across its participants.
type Expense struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string        `json:"userId" gorm:"index;type:varchar(36)"`
	Username     string        `json:"username"` // Creator name at the time of creation
	Amount       float64       `json:"amount"`
	Participants []Participant `json:"participants" gorm:"foreignKey:ExpenseID"`
	CreatedAt    time.Time     `json:"createdAt"`
}
