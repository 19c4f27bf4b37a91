package model

import "errors"

var (
	// ErrDataUnavailable marks a word file that is missing or unreadable.
	ErrDataUnavailable = errors.New("word data unavailable")
	// ErrNoEligibleWords means a filter left nothing to ask.
	ErrNoEligibleWords = errors.New("no eligible words")
	// ErrNothingToReview means no word met the review threshold.
	ErrNothingToReview = errors.New("nothing to review")
	// ErrPersistence wraps every history store failure.
	ErrPersistence = errors.New("history store failure")
	// ErrInvalidPhase is returned for session calls made in the wrong state.
	ErrInvalidPhase = errors.New("invalid session phase")
)
