package booking

import (
	"errors"
	"fmt"
)

// ErrNothingSelected blocks a booking whose quote has no positive total.
var ErrNothingSelected = errors.New("select at least one option")

// ErrInvalidDate rejects a booking date that is not in DateLayout.
var ErrInvalidDate = errors.New("booking date must be YYYY-MM-DD")

// DateLayout is the format of booking dates.
const DateLayout = "2006-01-02"

// QuantityError reports a quantity above the variant's declared maximum.
type QuantityError struct {
	Variant  string
	Quantity int
	Max      int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("variant %s: quantity %d exceeds the maximum of %d", e.Variant, e.Quantity, e.Max)
}
