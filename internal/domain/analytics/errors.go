package analytics

import "errors"

var (
	ErrInvalidRange  = errors.New("from must be before or equal to to")
	ErrInvalidPeriod = errors.New("period must be daily, weekly or monthly")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)
