package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrOnboardingRequired        = errors.New("onboarding required")
	ErrWrongTrack                = errors.New("feature not available for the current goal")
	ErrExamNotFound              = errors.New("exam not found")
	ErrExamRequired              = errors.New("examId is required for exam mode")
	ErrDsaTopicNotFound          = errors.New("dsa topic not found")
	ErrInterviewSessionNotFound  = errors.New("Interview session not found.")
	ErrInterviewQuestionNotFound = errors.New("Interview question not found.")
	ErrInvalidInput              = errors.New("invalid input")
	ErrPermissionDenied          = errors.New("permission denied")
)

// ValidationError 携带面向用户的校验信息，errors.Is 匹配 ErrInvalidInput
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
