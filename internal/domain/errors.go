package domain

import "errors"

var (
	ErrMalformedSubmission = errors.New("malformed review submission")
	ErrInvalidSubmission   = errors.New("invalid review submission")
	ErrUnknownSentiment    = errors.New("unknown sentiment label")
)
