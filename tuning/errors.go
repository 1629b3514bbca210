package tuning

import "errors"

// Error kinds surfaced to the boundary layer. Wrapped errors carry the
// offending parameter and value; discriminate with errors.Is.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrRangeOverflow    = errors.New("midi range overflow")
	ErrDegenerateInput  = errors.New("degenerate input")
)
