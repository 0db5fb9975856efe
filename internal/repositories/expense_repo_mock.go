package repositories

import (
	"sync"
	"time"

	"splitbill/internal/models"

	"github.com/google/uuid"
)

// MockExpenseRepository is an in-memory implementation of ExpenseRepository.
type MockExpenseRepository struct {
	expenses map[string]models.Expense
	order    []string // insertion order for stable listings
	mu       sync.RWMutex
}

// NewMockExpenseRepository creates a new instance of MockExpenseRepository.
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]models.Expense),
	}
}

// Create adds a new expense.
func (r *MockExpenseRepository) Create(expense *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	r.expenses[expense.ID] = *expense
	r.order = append(r.order, expense.ID)
	return nil
}

// GetAll returns all expenses in insertion order.
func (r *MockExpenseRepository) GetAll() ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expenseList := make([]models.Expense, 0, len(r.order))
	for _, id := range r.order {
		expenseList = append(expenseList, r.expenses[id])
	}
	return expenseList, nil
}

// GetByParticipant returns every expense the user created or takes part in.
func (r *MockExpenseRepository) GetByParticipant(userID string) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expenseList []models.Expense
	for _, id := range r.order {
		expense := r.expenses[id]
		if expense.UserID == userID {
			expenseList = append(expenseList, expense)
			continue
		}
		for _, p := range expense.Participants {
			if p.UserID == userID {
				expenseList = append(expenseList, expense)
				break
			}
		}
	}
	return expenseList, nil
}
