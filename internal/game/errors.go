package game

import "errors"

// Sentinel errors returned by the session state machine and player ledger.
// Callers match them with errors.Is; the API layer maps them to HTTP codes.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrScenarioNotFound    = errors.New("scenario not found")
	ErrInvalidTransition   = errors.New("transition not valid for current phase")
	ErrNotHost             = errors.New("only the host can do this")
	ErrDuplicateChoice     = errors.New("choice already made for this day")
	ErrBorrowLimitExceeded = errors.New("cannot borrow more than 3 times")
	ErrInvalidAmount       = errors.New("can only borrow $100, $200, $300, or $400")
	ErrNoLoan              = errors.New("no loan balance to repay")
	ErrExceedsBalance      = errors.New("repayment amount exceeds loan balance")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAlreadyPawned       = errors.New("ring is already pawned")
	ErrNotPawned           = errors.New("ring is not pawned")
	ErrInvalidDuration     = errors.New("transition duration out of range")
	ErrInvalidAction       = errors.New("action must be pay or ignore")
	ErrGroupNotFound       = errors.New("group not found")
)
