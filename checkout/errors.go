package checkout

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidSession covers an empty cart with no plan, a token mismatch,
	// and a token already consumed by a concurrent commit. The caller is sent
	// back to the cart view, never to an error page.
	ErrInvalidSession = errors.New("invalid checkout session")

	// ErrDuplicateSubscription means the user already holds an active,
	// unexpired subscription for the selected plan.
	ErrDuplicateSubscription = errors.New("subscription already active for this plan")
)

// ValidationError carries every violated payment rule at once; validation
// never short-circuits on the first failure.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid payment details: " + strings.Join(e.Violations, "; ")
}
