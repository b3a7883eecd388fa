package checkout

import "github.com/pkg/errors"

// ErrEmptyCart checkout was attempted with no line items
var ErrEmptyCart = errors.New("cart is empty")
