package chroma

import "errors"

// ErrInvalidParameter is returned (wrapped) for every precondition
// violation: non-positive counts, zero slope, duplicate offsets,
// non-positive bin counts and non-finite inputs.
var ErrInvalidParameter = errors.New("invalid parameter")
