package repositories

import (
	"fmt"
	"time"

	"splitbill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExpenseRepository is a GORM implementation of ExpenseRepository.
type GORMExpenseRepository struct {
	db *gorm.DB
}

// NewGORMExpenseRepository creates a new instance of GORMExpenseRepository.
func NewGORMExpenseRepository(db *gorm.DB) *GORMExpenseRepository {
	return &GORMExpenseRepository{
		db: db,
	}
}

// Create persists a new expense together with its participants.
func (r *GORMExpenseRepository) Create(expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetAll retrieves all expenses with their participants.
func (r *GORMExpenseRepository) GetAll() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Participants").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get all expenses: %w", err)
	}
	return expenses, nil
}

// GetByParticipant retrieves every expense the user created or takes part in.
func (r *GORMExpenseRepository) GetByParticipant(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	participantExpenses := r.db.Model(&models.Participant{}).
		Select("expense_id").
		Where("user_id = ?", userID)
	err := r.db.Preload("Participants").
		Where("user_id = ? OR id IN (?)", userID, participantExpenses).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for user %s: %w", userID, err)
	}
	return expenses, nil
}
