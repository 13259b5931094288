package cheesyblog

import "errors"

var (
	ErrPersist            = errors.New("failed to persist state")
	ErrInvalidPostMeta    = errors.New("invalid post metadata")
	ErrDuplicatePostID    = errors.New("duplicate post id")
	ErrInvalidReview      = errors.New("invalid review")
	ErrInvalidReservation = errors.New("invalid reservation")
	ErrTimeBooked         = errors.New("time already booked")
	ErrUnknownBackend     = errors.New("unknown storage backend")
	ErrInvalidMenu        = errors.New("invalid menu")
)
