package services_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"splitbill/internal/apperrors"
	"splitbill/internal/models"
	"splitbill/internal/repositories"
	"splitbill/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// newExpenseFixture wires an ExpenseService onto in-memory repositories
// seeded with two users, Alice and Bob.
func newExpenseFixture(t *testing.T) (*services.ExpenseService, *models.User, *models.User, *repositories.MockExpenseRepository) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	expenseRepo := repositories.NewMockExpenseRepository()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", MobileNumber: "9876543210", Password: "hash"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", MobileNumber: "9876543211", Password: "hash"}
	require.NoError(t, userRepo.Create(alice))
	require.NoError(t, userRepo.Create(bob))

	return services.NewExpenseService(expenseRepo, userRepo, nil), alice, bob, expenseRepo
}

func TestExpenseService_CreateEqualSplit(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	expense := &models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   100,
		Participants: []models.Participant{
			{UserID: alice.ID, Username: "Alice", Type: models.SplitEqual},
			{UserID: bob.ID, Username: "Bob", Type: models.SplitEqual},
		},
	}

	created, err := service.Create(expense)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	for _, p := range created.Participants {
		require.NotNil(t, p.AmountOwed)
		require.NotNil(t, p.Percentage)
		assert.InDelta(t, 50.0, *p.AmountOwed, 0.01)
		assert.InDelta(t, 50.0, *p.Percentage, 0.01)
	}
}

func TestExpenseService_CreateExactKeepsPercentageUnset(t *testing.T) {
	service, alice, _, _ := newExpenseFixture(t)

	expense := &models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   90,
		Participants: []models.Participant{
			{UserID: alice.ID, Username: "Alice", Type: models.SplitExact, AmountOwed: floatPtr(90)},
		},
	}

	created, err := service.Create(expense)
	require.NoError(t, err)
	require.NotNil(t, created.Participants[0].AmountOwed)
	assert.Equal(t, 90.0, *created.Participants[0].AmountOwed)
	assert.Nil(t, created.Participants[0].Percentage)
}

func TestExpenseService_CreateRejectsOverAllocatedPercentage(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	expense := &models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   200,
		Participants: []models.Participant{
			{UserID: alice.ID, Username: "Alice", Type: models.SplitPercentage, Percentage: floatPtr(30)},
			{UserID: bob.ID, Username: "Bob", Type: models.SplitPercentage, Percentage: floatPtr(80)},
		},
	}

	_, err := service.Create(expense)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "total percentage exceeds 100%")
}

func TestExpenseService_CreateRejectsMissingFields(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	// exact participant without an amount
	_, err := service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   50,
		Participants: []models.Participant{
			{UserID: bob.ID, Username: "Bob", Type: models.SplitExact},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// participant without a username
	_, err = service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   50,
		Participants: []models.Participant{
			{UserID: bob.ID, Type: models.SplitEqual},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// no participants at all
	_, err = service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   50,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExpenseService_CreateUnknownUsers(t *testing.T) {
	service, alice, _, _ := newExpenseFixture(t)

	// unknown creator
	_, err := service.Create(&models.Expense{
		UserID:   "ghost",
		Username: "Ghost",
		Amount:   50,
		Participants: []models.Participant{
			{UserID: alice.ID, Username: "Alice", Type: models.SplitEqual},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// unknown participant
	_, err = service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   50,
		Participants: []models.Participant{
			{UserID: "ghost", Username: "Ghost", Type: models.SplitEqual},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExpenseService_CreateComputedResolvesNames(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	expense := &models.Expense{
		UserID: alice.ID,
		Amount: 200,
		Participants: []models.Participant{
			{UserID: alice.ID, Type: models.SplitPercentage, Percentage: floatPtr(25)},
			{UserID: bob.ID, Type: models.SplitPercentage, Percentage: floatPtr(75)},
		},
	}

	created, err := service.CreateComputed(expense)
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Username)
	assert.Equal(t, "Alice", created.Participants[0].Username)
	assert.Equal(t, "Bob", created.Participants[1].Username)
	assert.InDelta(t, 50.0, *created.Participants[0].AmountOwed, 0.01)
	assert.InDelta(t, 150.0, *created.Participants[1].AmountOwed, 0.01)
}

func TestExpenseService_GetByParticipant(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	_, err := service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   60,
		Participants: []models.Participant{
			{UserID: bob.ID, Username: "Bob", Type: models.SplitEqual},
		},
	})
	require.NoError(t, err)

	// Bob is a participant, Alice the creator: both see the expense.
	for _, id := range []string{alice.ID, bob.ID} {
		expenses, err := service.GetByParticipant(id)
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
	}

	// An unknown user is reported before the ledger is consulted.
	_, err = service.GetByParticipant("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "user not found")
}

func TestExpenseService_GetByParticipantNoExpenses(t *testing.T) {
	service, alice, _, _ := newExpenseFixture(t)

	// A registered user with no expenses gets an explicit "no expenses"
	// error, never an empty success.
	_, err := service.GetByParticipant(alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "no expenses found")
}

func TestExpenseService_GetAllEmpty(t *testing.T) {
	service, _, _, _ := newExpenseFixture(t)

	_, err := service.GetAll()
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExpenseService_ExportBalanceSheet(t *testing.T) {
	service, alice, bob, _ := newExpenseFixture(t)

	_, err := service.Create(&models.Expense{
		UserID:   alice.ID,
		Username: "Alice",
		Amount:   60,
		Participants: []models.Participant{
			{UserID: bob.ID, Username: "Bob", Type: models.SplitEqual},
		},
	})
	require.NoError(t, err)

	sheet, err := service.ExportBalanceSheet()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(sheet))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ExpenseID", "CreatedBy", "Amount", "Participants", "CreatedAt"}, records[0])

	row := records[1]
	assert.Equal(t, "Alice", row[1])
	assert.Equal(t, "60", row[2])
	assert.Equal(t, "Bob (equal)", row[3])
	assert.NotContains(t, row[4], ":") // date only, no time component

	// With no intervening writes the export is byte-identical.
	again, err := service.ExportBalanceSheet()
	require.NoError(t, err)
	assert.Equal(t, sheet, again)
}

func TestExpenseService_ExportBalanceSheetEmpty(t *testing.T) {
	service, _, _, _ := newExpenseFixture(t)

	_, err := service.ExportBalanceSheet()
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
