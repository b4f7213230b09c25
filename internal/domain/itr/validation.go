package itr

import "strings"

// ValidateCreateInput validates fields required to create an ITR.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ActivityID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Description) == "" {
		return ErrInvalidInput
	}
	return ValidateQuantities(req.QuantityTotal, req.QuantityDone)
}

// ValidateQuantities enforces total >= 1 and 0 <= done <= total.
func ValidateQuantities(total, done int) error {
	if total < 1 {
		return ErrInvalidQuantity
	}
	if done < 0 || done > total {
		return ErrInvalidQuantity
	}
	return nil
}
