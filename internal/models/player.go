package models

// Consequence describes the effect of choosing an option on a given day.
// The ledger applies it without interpreting scenario semantics.
type Consequence struct {
	ResourceChange   int    `json:"resourceChange"`
	Narrative        string `json:"narrative"`
	FamilyHits       int    `json:"familyHits,omitempty"`
	HealthHits       int    `json:"healthHits,omitempty"`
	JobHits          int    `json:"jobHits,omitempty"`
	RemoveFamilyHits int    `json:"removeFamilyHits,omitempty"`
}

// Choice is one entry in a player's append-only decision log.
type Choice struct {
	Day         int         `json:"day"`
	Choice      string      `json:"choice"` // "A" | "B"
	Consequence Consequence `json:"consequence"`
}

// Player represents one participant's persistent state within a session.
type Player struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`

	Resources  int  `json:"resources"`
	FamilyHits int  `json:"familyHits"`
	HealthHits int  `json:"healthHits"`
	JobHits    int  `json:"jobHits"`
	IsEmployed bool `json:"isEmployed"`

	LoanBalance int  `json:"loanBalance"`
	BorrowCount int  `json:"borrowCount"`
	RingPawned  bool `json:"ringPawned"`

	// LoanReminderResolvedDay marks that the player has answered the
	// loan/ring reminder checkpoint for that day, so it is never
	// re-prompted or re-penalized. nil until the first checkpoint.
	LoanReminderResolvedDay *int `json:"loanReminderResolvedDay,omitempty"`

	GroupID string   `json:"groupId,omitempty"`
	Choices []Choice `json:"choices"`
}

// ChoiceForDay returns the player's recorded choice for a day, if any.
func (p *Player) ChoiceForDay(day int) (Choice, bool) {
	for _, c := range p.Choices {
		if c.Day == day {
			return c, true
		}
	}
	return Choice{}, false
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	c.Choices = make([]Choice, len(p.Choices))
	copy(c.Choices, p.Choices)
	if p.LoanReminderResolvedDay != nil {
		day := *p.LoanReminderResolvedDay
		c.LoanReminderResolvedDay = &day
	}
	return &c
}
