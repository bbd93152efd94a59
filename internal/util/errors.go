package util

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrFeatureDisabled        = errors.New("feature disabled")
	ErrNotPublished           = errors.New("content is not published")
	ErrPathFull               = errors.New("learning path has reached its enrollment limit")
	ErrEnrollmentClosed       = errors.New("learning path no longer accepts enrollments")
	ErrAlreadyEnrolled        = errors.New("student is already enrolled in this learning path")
	ErrNotEnrolled            = errors.New("student is not enrolled in this learning path")
	ErrActiveEnrollmentLimit  = errors.New("active enrollment limit reached")
	ErrSelfEnrollmentDisabled = errors.New("self enrollment is disabled")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrMaxAttemptsReached     = errors.New("maximum number of attempts reached")
	ErrPastDue                = errors.New("assessment is past its due date")
	ErrConcurrentLabLimit     = errors.New("too many labs in progress")
	ErrInvalidRubricScore     = errors.New("rubric score does not match the assessment rubric")
	ErrCriteriaNotMet         = errors.New("passing criteria not met")
	ErrCertificationExists    = errors.New("learning path already has a certification")
	ErrNoCertification        = errors.New("learning path has no certification")
	ErrThreadNotOpen          = errors.New("thread does not accept replies")
	ErrInvalidVote            = errors.New("vote value must be 1, -1 or 0")
	ErrInvalidFile            = errors.New("invalid file")
	ErrInvalidSort            = errors.New("unsupported sort field")
	ErrEmailTaken             = errors.New("email is already registered")
)
