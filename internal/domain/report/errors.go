package report

import "errors"

var (
	ErrNothingToGenerate  = errors.New("nothing to generate")
	ErrUnknownPolicy      = errors.New("unknown classification policy")
	ErrReportRenderFailed = errors.New("failed to render report")
)
