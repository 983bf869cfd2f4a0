package vehicle

import "errors"

// Store-level sentinel errors. The HTTP layer maps these onto status codes;
// anything else coming out of the repo is treated as a storage failure.
var (
	ErrNotFound     = errors.New("vehicle not found")
	ErrDuplicateVIN = errors.New("vin already exists")
)
