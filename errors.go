package stillwater

import "errors"

// Validation sentinels. Errors returned by Validate methods wrap one of these
// so callers can test with errors.Is.
var (
	ErrInvalidShape   = errors.New("stillwater: invalid shape")
	ErrInvalidTexture = errors.New("stillwater: invalid texture")
	ErrInvalidEmitter = errors.New("stillwater: invalid emitter config")
)
