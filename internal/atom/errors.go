package atom

import "errors"

// ErrInvalidSeed is returned by Initialize when a seed value is NaN or infinite.
var ErrInvalidSeed = errors.New("invalid seed")
