package timesheet

import "errors"

var (
	ErrInvalidFilter = errors.New("time record filter needs both overlap bounds")
)
