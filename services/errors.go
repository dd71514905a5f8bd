package services

import "errors"

var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidRole         = errors.New("role must be one of participant, reader, reviewer, submitter, mentor")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("participant id already in use")
	ErrExportUnavailable   = errors.New("participant export is not configured")
)
