package element

import (
	"errors"
	"fmt"
	"time"

	"ui_automation/domain/entities"
)

var (
	// ErrNotVisible matches every *WaitTimeoutError
	ErrNotVisible = errors.New("element not visible")

	// ErrInteractionFailed matches every *InteractionError
	ErrInteractionFailed = errors.New("element interaction failed")
)

// WaitTimeoutError reports a locator that did not resolve to a visible
// element within the timeout.
type WaitTimeoutError struct {
	Locator string
	Timeout time.Duration
	Err     error
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("element not visible: %s (timeout %s): %v", e.Locator, e.Timeout, e.Err)
}

func (e *WaitTimeoutError) Unwrap() error { return e.Err }

func (e *WaitTimeoutError) Is(target error) bool { return target == ErrNotVisible }

// InteractionError reports a driver rejecting an action.
type InteractionError struct {
	Op      entities.ActionType
	Locator string
	Timeout time.Duration
	Err     error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s failed on %s (timeout %s): %v", e.Op, e.Locator, e.Timeout, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

func (e *InteractionError) Is(target error) bool { return target == ErrInteractionFailed }
