package assessment

import "errors"

var (
	ErrSelfAssessmentNotFound = errors.New("self-assessment not found")
	ErrFutureMonth            = errors.New("cannot assess a month that has not started")
)
