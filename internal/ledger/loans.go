package ledger

import (
	"log"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

// ReminderStatus is the outcome of a loan-reminder checkpoint.
type ReminderStatus string

const (
	ReminderPaid            ReminderStatus = "paid"
	ReminderIgnored         ReminderStatus = "ignored"
	ReminderAlreadyResolved ReminderStatus = "already-resolved"
)

// ReminderResult reports how a loan-reminder checkpoint resolved.
type ReminderResult struct {
	Status    ReminderStatus `json:"status"`
	TotalCost int            `json:"totalCost"`
	Player    *models.Player `json:"player"`
}

// BorrowMoney takes out a loan. Players may borrow at most three times, in
// fixed denominations only.
func (s *Service) BorrowMoney(playerID string, amount int) (*models.Player, error) {
	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if p.BorrowCount >= game.MaxBorrowCount {
			return game.ErrBorrowLimitExceeded
		}
		if !game.ValidBorrowAmount(amount) {
			return game.ErrInvalidAmount
		}
		p.BorrowCount++
		p.LoanBalance += amount
		p.Resources += amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("loan taken: player=%s amount=%d balance=%d", playerID, amount, updated.LoanBalance)
	s.notify(updated)
	return updated, nil
}

// RepayLoan pays back part or all of the loan principal. Interest is
// charged on the repaid amount, so partial repayment is allowed.
func (s *Service) RepayLoan(playerID string, repaymentAmount int) (*models.Player, error) {
	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if repaymentAmount <= 0 {
			return game.ErrInvalidAmount
		}
		if p.LoanBalance == 0 {
			return game.ErrNoLoan
		}
		if repaymentAmount > p.LoanBalance {
			return game.ErrExceedsBalance
		}
		cost := game.LoanInterest(repaymentAmount)
		if p.Resources < cost {
			return game.ErrInsufficientFunds
		}
		p.Resources -= cost
		p.LoanBalance -= repaymentAmount
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated)
	return updated, nil
}

// PawnRing pledges the wedding ring for cash. It can only be pawned once.
func (s *Service) PawnRing(playerID string) (*models.Player, error) {
	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if p.RingPawned {
			return game.ErrAlreadyPawned
		}
		p.RingPawned = true
		p.Resources += game.RingPawnValue
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated)
	return updated, nil
}

// RedeemRing buys the ring back at the fixed redemption price.
func (s *Service) RedeemRing(playerID string) (*models.Player, error) {
	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if !p.RingPawned {
			return game.ErrNotPawned
		}
		if p.Resources < game.RingRedemptionCost {
			return game.ErrInsufficientFunds
		}
		p.RingPawned = false
		p.Resources -= game.RingRedemptionCost
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated)
	return updated, nil
}

// HandleLoanReminder resolves the pay-or-ignore checkpoint on the reminder
// days. Paying clears the loan (and, on the final day, redeems the ring as
// part of the same bill). Ignoring costs a health hit, and on the final
// day also the job. Either way the day is marked resolved so the
// checkpoint never fires twice.
func (s *Service) HandleLoanReminder(playerID string, action string, day int) (*ReminderResult, error) {
	if action != "pay" && action != "ignore" {
		return nil, game.ErrInvalidAction
	}

	result := &ReminderResult{}
	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if p.LoanReminderResolvedDay != nil && *p.LoanReminderResolvedDay == day {
			result.Status = ReminderAlreadyResolved
			return nil
		}

		loanCost, ringCost := game.ReminderCost(p, day)
		result.TotalCost = loanCost + ringCost

		if action == "pay" {
			if p.Resources < result.TotalCost {
				return game.ErrInsufficientFunds
			}
			p.Resources -= result.TotalCost
			p.LoanBalance = 0
			if ringCost > 0 {
				p.RingPawned = false
			}
			result.Status = ReminderPaid
		} else {
			p.HealthHits++
			game.Cascade(p)
			if day == game.FinalDay {
				p.IsEmployed = false
			}
			result.Status = ReminderIgnored
		}

		resolved := day
		p.LoanReminderResolvedDay = &resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Status != ReminderAlreadyResolved {
		s.notify(updated)
	}
	result.Player = updated
	return result, nil
}
