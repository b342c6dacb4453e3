package game

import (
	"math"

	"github.com/teaonrocks/ODAT/internal/models"
)

// ApplyConsequence applies a day's consequence to the player's counters in
// place: resource delta, hit increments, optional family-hit removal, then
// the accumulation cascade. It is pure state arithmetic so it can be tested
// without a store.
func ApplyConsequence(p *models.Player, c models.Consequence) {
	p.Resources += c.ResourceChange
	p.FamilyHits += c.FamilyHits
	p.HealthHits += c.HealthHits
	p.JobHits += c.JobHits

	if c.RemoveFamilyHits > 0 {
		p.FamilyHits = max(0, p.FamilyHits-c.RemoveFamilyHits)
	}

	Cascade(p)
}

// Cascade runs the accumulation rules in fixed order, each tier re-checked
// after the prior one fires. A single consequence granting 3+ hits of one
// type can therefore convert all the way to job loss in one call.
//
// 3 family hits -> +1 health hit, family resets.
// 3 health hits -> +1 job hit, health resets.
// 3 job hits -> unemployed; job hits do not reset.
func Cascade(p *models.Player) {
	if p.FamilyHits >= HitThreshold {
		p.HealthHits++
		p.FamilyHits = 0
	}
	if p.HealthHits >= HitThreshold {
		p.JobHits++
		p.HealthHits = 0
	}
	if p.JobHits >= HitThreshold {
		p.IsEmployed = false
	}
}

// LoanInterest returns the cost of settling amount of loan principal,
// with 10% interest, rounded to the nearest dollar.
func LoanInterest(amount int) int {
	return int(math.Round(float64(amount) * LoanInterestRate))
}

// ReminderCost computes the total a player must pay to clear the loan/ring
// reminder checkpoint on the given day. The ring only has to be redeemed at
// the final checkpoint.
func ReminderCost(p *models.Player, day int) (loanCost, ringCost int) {
	if p.LoanBalance > 0 {
		loanCost = LoanInterest(p.LoanBalance)
	}
	if day == FinalDay && p.RingPawned {
		ringCost = RingRedemptionCost
	}
	return loanCost, ringCost
}
