package game

import (
	"strings"
	"testing"

	"github.com/teaonrocks/ODAT/internal/models"
)

func TestApplyConsequenceResources(t *testing.T) {
	p := &models.Player{Resources: 150, IsEmployed: true}
	ApplyConsequence(p, models.Consequence{ResourceChange: -70})
	if p.Resources != 80 {
		t.Errorf("Resources = %d, want 80", p.Resources)
	}

	// Overdraft is allowed; affordability is the caller's concern
	ApplyConsequence(p, models.Consequence{ResourceChange: -140})
	if p.Resources != -60 {
		t.Errorf("Resources = %d, want -60", p.Resources)
	}
}

func TestApplyConsequenceCascade(t *testing.T) {
	tests := []struct {
		name         string
		start        models.Player
		consequence  models.Consequence
		wantFamily   int
		wantHealth   int
		wantJob      int
		wantEmployed bool
	}{
		{
			name:         "family converts to health at threshold",
			start:        models.Player{FamilyHits: 2, IsEmployed: true},
			consequence:  models.Consequence{FamilyHits: 1},
			wantFamily:   0,
			wantHealth:   1,
			wantEmployed: true,
		},
		{
			name:         "health converts to job at threshold",
			start:        models.Player{HealthHits: 2, IsEmployed: true},
			consequence:  models.Consequence{HealthHits: 1},
			wantHealth:   0,
			wantJob:      1,
			wantEmployed: true,
		},
		{
			name:         "third job hit ends employment without reset",
			start:        models.Player{JobHits: 2, IsEmployed: true},
			consequence:  models.Consequence{JobHits: 1},
			wantJob:      3,
			wantEmployed: false,
		},
		{
			name:         "full triple cascade in one call",
			start:        models.Player{FamilyHits: 2, HealthHits: 2, JobHits: 2, IsEmployed: true},
			consequence:  models.Consequence{FamilyHits: 1},
			wantFamily:   0,
			wantHealth:   0,
			wantJob:      3,
			wantEmployed: false,
		},
		{
			name:         "large single grant cascades through tiers",
			start:        models.Player{IsEmployed: true},
			consequence:  models.Consequence{FamilyHits: 3, HealthHits: 2},
			wantFamily:   0,
			wantHealth:   0,
			wantJob:      1,
			wantEmployed: true,
		},
		{
			name:         "remove applies after increment and clamps at zero",
			start:        models.Player{FamilyHits: 1, IsEmployed: true},
			consequence:  models.Consequence{FamilyHits: 1, RemoveFamilyHits: 5},
			wantFamily:   0,
			wantEmployed: true,
		},
		{
			name:         "remove can defuse a pending conversion",
			start:        models.Player{FamilyHits: 2, IsEmployed: true},
			consequence:  models.Consequence{FamilyHits: 1, RemoveFamilyHits: 1},
			wantFamily:   2,
			wantEmployed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			ApplyConsequence(&p, tt.consequence)
			if p.FamilyHits != tt.wantFamily {
				t.Errorf("FamilyHits = %d, want %d", p.FamilyHits, tt.wantFamily)
			}
			if p.HealthHits != tt.wantHealth {
				t.Errorf("HealthHits = %d, want %d", p.HealthHits, tt.wantHealth)
			}
			if p.JobHits != tt.wantJob {
				t.Errorf("JobHits = %d, want %d", p.JobHits, tt.wantJob)
			}
			if p.IsEmployed != tt.wantEmployed {
				t.Errorf("IsEmployed = %v, want %v", p.IsEmployed, tt.wantEmployed)
			}
		})
	}
}

func TestCascadeDoesNotRestoreEmployment(t *testing.T) {
	p := &models.Player{JobHits: 3, IsEmployed: false}
	Cascade(p)
	if p.IsEmployed {
		t.Error("employment must never be restored")
	}
	if p.JobHits != 3 {
		t.Errorf("JobHits = %d, want 3 (terminal marker, not cyclic)", p.JobHits)
	}
}

func TestLoanInterest(t *testing.T) {
	tests := []struct {
		amount int
		want   int
	}{
		{100, 110},
		{200, 220},
		{300, 330},
		{400, 440},
		{55, 61}, // 60.5 rounds up
		{0, 0},
	}
	for _, tt := range tests {
		if got := LoanInterest(tt.amount); got != tt.want {
			t.Errorf("LoanInterest(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestReminderCost(t *testing.T) {
	p := &models.Player{LoanBalance: 200, RingPawned: true}

	loanCost, ringCost := ReminderCost(p, 8)
	if loanCost != 220 || ringCost != 0 {
		t.Errorf("day 8: got (%d, %d), want (220, 0)", loanCost, ringCost)
	}

	loanCost, ringCost = ReminderCost(p, FinalDay)
	if loanCost != 220 || ringCost != RingRedemptionCost {
		t.Errorf("day 14: got (%d, %d), want (220, %d)", loanCost, ringCost, RingRedemptionCost)
	}

	clean := &models.Player{}
	loanCost, ringCost = ReminderCost(clean, FinalDay)
	if loanCost != 0 || ringCost != 0 {
		t.Errorf("no obligations: got (%d, %d), want (0, 0)", loanCost, ringCost)
	}
}

func TestValidBorrowAmount(t *testing.T) {
	for _, amount := range BorrowAmounts {
		if !ValidBorrowAmount(amount) {
			t.Errorf("ValidBorrowAmount(%d) = false", amount)
		}
	}
	for _, amount := range []int{0, -100, 50, 150, 500} {
		if ValidBorrowAmount(amount) {
			t.Errorf("ValidBorrowAmount(%d) = true", amount)
		}
	}
}

func TestGenerateSessionCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateSessionCode()
		if len(code) != SessionCodeLength {
			t.Fatalf("len(code) = %d, want %d", len(code), SessionCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(SessionCodeChars, c) {
				t.Fatalf("code %q contains %q, not in alphabet", code, c)
			}
		}
	}
}

func TestUniqueSessionCodeRetries(t *testing.T) {
	attempts := 0
	code := UniqueSessionCode(func(string) bool {
		attempts++
		return attempts < 3
	})
	if code == "" {
		t.Fatal("expected a code")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestUniqueSessionCodeGivesUpAfterBoundedAttempts(t *testing.T) {
	attempts := 0
	code := UniqueSessionCode(func(string) bool {
		attempts++
		return true
	})
	if code == "" {
		t.Fatal("expected a code even when all attempts collide")
	}
	if attempts != SessionCodeAttempts {
		t.Errorf("attempts = %d, want %d", attempts, SessionCodeAttempts)
	}
}
