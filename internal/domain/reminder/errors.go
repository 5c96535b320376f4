package reminder

import "errors"

var (
	ErrUnknownTrigger = errors.New("unknown trigger")
	ErrNotQueued      = errors.New("trigger was not queued")
)
