package repositories

import "splitbill/internal/models"

// ExpenseRepository defines the interface for expense data access.
type ExpenseRepository interface {
	Create(expense *models.Expense) error
	GetAll() ([]models.Expense, error)
	// GetByParticipant returns every expense where the user is the creator
	// or appears among the participants.
	GetByParticipant(userID string) ([]models.Expense, error)
}
