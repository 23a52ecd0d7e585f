package store

import "errors"

// Error kinds returned by store operations. Validation errors produce no
// mutation and are not retryable; ErrConcurrentModification and
// ErrStoreUnavailable are retryable by the caller. Discriminate with
// errors.Is; messages carry the offending values where useful.
var (
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrItemNotFound           = errors.New("item not found")
	ErrRecipientNotFound      = errors.New("recipient not found")
	ErrDonationNotFound       = errors.New("donation not found")
	ErrPolicyCapExceeded      = errors.New("quantity exceeds allocation policy cap")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrAssignmentNotFound     = errors.New("recipient has not been assigned this item")
	ErrDuplicateItem          = errors.New("an item with this name already exists in the category")
	ErrItemInUse              = errors.New("item has distributions and cannot be deleted")
	ErrRecipientInUse         = errors.New("recipient has distributions and cannot be deleted")
	ErrConcurrentModification = errors.New("stock changed concurrently, retry")
	ErrStoreUnavailable       = errors.New("store unavailable")
)
