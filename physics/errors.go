package physics

import "errors"

var (
	ErrInvalidScale = errors.New("physics: scale must be positive and finite")
	ErrInvalidStep  = errors.New("physics: fixed time step must be positive")
)
