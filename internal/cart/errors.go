package cart

import "errors"

// ErrInvalidQuantity is returned when an add carries a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")
