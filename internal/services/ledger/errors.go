package ledger

import "errors"

// Service errors. Every failed operation leaves the record unchanged;
// all of these are normal, recoverable outcomes of an invalid intent.
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrWrongCardType     = errors.New("operation not available for this card type")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoBonusAvailable  = errors.New("no bonus discount available")
	ErrOperationFailed   = errors.New("ledger operation failed")
)
