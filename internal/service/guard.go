package service

import (
	"fmt"

	"github.com/google/uuid"
)

// guardOwnerEmail enforces the ownership guard for "mine" listings that
// accept an optional ?email= convenience parameter. The parameter is
// advisory only: empty means "use the subject", and any other value must
// equal the verified subject identity. The effective filter always
// derives from the subject, never from the parameter.
func guardOwnerEmail(subject, requested string) error {
	if requested != "" && requested != subject {
		return ErrForbidden
	}
	return nil
}

// validateID checks that an identifier is structurally valid before any
// query is attempted.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
