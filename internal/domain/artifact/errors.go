package artifact

import "errors"

var (
	ErrArtifact          = errors.New("failed to persist artifact")
	ErrInvalidFileName   = errors.New("invalid artifact file name")
	ErrInvalidVisibility = errors.New("invalid artifact visibility")
	ErrEmptyArtifact     = errors.New("artifact is empty")
)
