package disk

import "fmt"

// InvalidSlotError is returned for a partition slot outside the four an MBR holds
type InvalidSlotError struct {
	requested int
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("requested partition slot %d is not between 0 and 3", e.requested)
}

func NewInvalidSlotError(requested int) *InvalidSlotError {
	return &InvalidSlotError{
		requested: requested,
	}
}
