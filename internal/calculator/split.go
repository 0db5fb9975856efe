package calculator

import (
	"splitbill/internal/apperrors"
	"splitbill/internal/models"
)

// ComputeShares fills in the final AmountOwed and Percentage for every
// participant of an expense, according to its split type:
//
//   - "exact": AmountOwed must be supplied and non-negative; Percentage
//     is left unset.
//   - "percentage": Percentage must be supplied in [0,100]; AmountOwed is
//     computed as amount * percentage / 100.
//   - "equal": the participant gets amount / N and 100 / N percent, where
//     N is the participant count of the whole expense.
//
// The sum of supplied percentages must not exceed 100. Sums of computed
// AmountOwed values are NOT reconciled against the total amount: mixed
// split types may under- or over-allocate, which is accepted as-is.
//
// The slice is mutated in place. The caller guarantees it is non-empty.
func ComputeShares(amount float64, participants []models.Participant) error {
	n := len(participants)
	if n == 0 {
		return apperrors.Validation("at least one participant is required")
	}

	var percentageTotal float64
	for i := range participants {
		p := &participants[i]
		switch p.Type {
		case models.SplitExact:
			if p.AmountOwed == nil || *p.AmountOwed < 0 {
				return apperrors.Validation("valid amountOwed is required for participant %s with type 'exact'", p.UserID)
			}
		case models.SplitPercentage:
			if p.Percentage == nil || *p.Percentage < 0 || *p.Percentage > 100 {
				return apperrors.Validation("valid percentage (0-100) is required for participant %s with type 'percentage'", p.UserID)
			}
			percentageTotal += *p.Percentage
			owed := amount * *p.Percentage / 100
			p.AmountOwed = &owed
		case models.SplitEqual:
			owed := amount / float64(n)
			pct := 100 / float64(n)
			p.AmountOwed = &owed
			p.Percentage = &pct
		default:
			return apperrors.Validation("invalid split type '%s' for participant %s", p.Type, p.UserID)
		}
	}

	if percentageTotal > 100 {
		return apperrors.Validation("total percentage exceeds 100%%")
	}
	return nil
}
