package services

import (
	"bytes"
	"encoding/csv"
	"log"
	"strconv"
	"strings"

	"splitbill/internal/apperrors"
	"splitbill/internal/calculator"
	"splitbill/internal/models"
	"splitbill/internal/repositories"
	"splitbill/pkg/rabbitmq"
)

// ExpenseService handles business logic related to expenses.
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
	userRepo    repositories.UserRepository
	mqClient    *rabbitmq.Client
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo repositories.ExpenseRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		mqClient:    mqClient,
	}
}

// Create records a new expense from a full participant payload: the caller
// supplies the creator name and every participant's name and split fields.
//
// Deprecated: the client-supplied-name variant is kept for compatibility;
// CreateComputed is the canonical path and resolves names server-side.
func (s *ExpenseService) Create(expense *models.Expense) (*models.Expense, error) {
	if err := s.validateCreator(expense.UserID); err != nil {
		return nil, err
	}
	if len(expense.Participants) == 0 {
		return nil, apperrors.Validation("at least one participant is required")
	}

	for i := range expense.Participants {
		p := &expense.Participants[i]
		if err := s.validateParticipantExists(p.UserID); err != nil {
			return nil, err
		}
		if p.Username == "" {
			return nil, apperrors.Validation("participant username is required for userId %s", p.UserID)
		}
	}

	if err := calculator.ComputeShares(expense.Amount, expense.Participants); err != nil {
		return nil, err
	}

	return s.persist(expense)
}

// CreateComputed records a new expense resolving the creator and participant
// display names from the user directory, then computing owed amounts from
// the split policy. This is the canonical creation path.
func (s *ExpenseService) CreateComputed(expense *models.Expense) (*models.Expense, error) {
	creator, err := s.userRepo.GetByID(expense.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user %s: %v", expense.UserID, err)
	}
	if creator == nil {
		return nil, apperrors.NotFound("user not found")
	}
	expense.Username = creator.Name

	if len(expense.Participants) == 0 {
		return nil, apperrors.Validation("at least one participant is required")
	}

	for i := range expense.Participants {
		p := &expense.Participants[i]
		member, err := s.userRepo.GetByID(p.UserID)
		if err != nil {
			return nil, apperrors.Internal("failed to look up participant %s: %v", p.UserID, err)
		}
		if member == nil {
			return nil, apperrors.NotFound("participant userId %s not found", p.UserID)
		}
		p.Username = member.Name
	}

	if err := calculator.ComputeShares(expense.Amount, expense.Participants); err != nil {
		return nil, err
	}

	return s.persist(expense)
}

// GetByParticipant retrieves every expense the user created or participates in.
func (s *ExpenseService) GetByParticipant(userID string) ([]models.Expense, error) {
	if err := s.validateCreator(userID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.GetByParticipant(userID)
	if err != nil {
		return nil, apperrors.Internal("failed to get expenses for user %s: %v", userID, err)
	}
	if len(expenses) == 0 {
		return nil, apperrors.NotFound("no expenses found for this user")
	}
	return expenses, nil
}

// GetAll retrieves every expense in the ledger.
func (s *ExpenseService) GetAll() ([]models.Expense, error) {
	expenses, err := s.expenseRepo.GetAll()
	if err != nil {
		return nil, apperrors.Internal("failed to get all expenses: %v", err)
	}
	if len(expenses) == 0 {
		return nil, apperrors.NotFound("no expenses found")
	}
	return expenses, nil
}

// ExportBalanceSheet renders the whole ledger as CSV. The sheet is rebuilt
// from scratch on every call and returned as an in-memory buffer.
func (s *ExpenseService) ExportBalanceSheet() ([]byte, error) {
	expenses, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ExpenseID", "CreatedBy", "Amount", "Participants", "CreatedAt"}); err != nil {
		return nil, apperrors.Internal("failed to write balance sheet header: %v", err)
	}
	for _, expense := range expenses {
		participants := make([]string, 0, len(expense.Participants))
		for _, p := range expense.Participants {
			participants = append(participants, p.Username+" ("+p.Type+")")
		}
		row := []string{
			expense.ID,
			expense.Username,
			strconv.FormatFloat(expense.Amount, 'f', -1, 64),
			strings.Join(participants, ", "),
			expense.CreatedAt.Format("1/2/2006"), // Date only, no time component
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.Internal("failed to write balance sheet row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Internal("failed to generate balance sheet: %v", err)
	}
	return buf.Bytes(), nil
}

// persist stores the expense and publishes the created event. Publish
// failures are logged, never surfaced: the record is already committed.
func (s *ExpenseService) persist(expense *models.Expense) (*models.Expense, error) {
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, apperrors.Internal("failed to create expense: %v", err)
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"expenseId":    expense.ID,
			"userId":       expense.UserID,
			"amount":       expense.Amount,
			"participants": len(expense.Participants),
		}
		if err := s.mqClient.PublishExpenseCreated(event); err != nil {
			log.Printf("Warning: failed to publish expense created event for expense %s: %v", expense.ID, err)
		}
	}

	return expense, nil
}

func (s *ExpenseService) validateCreator(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apperrors.Internal("failed to look up user %s: %v", userID, err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (s *ExpenseService) validateParticipantExists(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apperrors.Internal("failed to look up participant %s: %v", userID, err)
	}
	if user == nil {
		return apperrors.NotFound("participant userId %s not found", userID)
	}
	return nil
}
