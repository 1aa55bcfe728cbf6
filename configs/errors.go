package configs

import "errors"

var (
	ErrUnknownMethod = errors.New("unknown log method")
	ErrUnknownColor  = errors.New("unknown color")
)
