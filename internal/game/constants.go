package game

const (
	// StartingResources is every player's initial currency balance
	StartingResources = 150

	// FinalDay is the last simulation day; advancing past it ends the game
	FinalDay = 14

	// HitThreshold converts a full counter into one hit of the next tier
	HitThreshold = 3

	// MaxBorrowCount caps how many times a player may take a loan
	MaxBorrowCount = 3

	// LoanInterestRate is charged on loan repayment and forced settlement
	LoanInterestRate = 1.10

	// RingPawnValue is the cash received for pawning the wedding ring
	RingPawnValue = 150

	// RingRedemptionCost is the fixed buy-back price (150 at 6% interest)
	RingRedemptionCost = 159

	// MinTransitionDuration and MaxTransitionDuration bound the
	// host-configurable day-transition display time, in milliseconds
	MinTransitionDuration = 1000
	MaxTransitionDuration = 10000

	// DefaultTransitionDuration is used when the host never changes it
	DefaultTransitionDuration = 1000

	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 4

	// SessionCodeChars are the characters used for generating session codes (excluding ambiguous chars)
	SessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// SessionCodeAttempts bounds the collision-retry loop at creation
	SessionCodeAttempts = 5

	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 10

	// SSETimeoutSeconds is the timeout for sending messages to SSE clients
	SSETimeoutSeconds = 1
)

// BorrowAmounts are the only loan sizes the moneylender offers.
var BorrowAmounts = []int{100, 200, 300, 400}

// ValidBorrowAmount reports whether amount is one of the offered loan sizes.
func ValidBorrowAmount(amount int) bool {
	for _, a := range BorrowAmounts {
		if a == amount {
			return true
		}
	}
	return false
}
