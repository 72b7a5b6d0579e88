package domain

import "errors"

var (
	ErrEateryNotFound = errors.New("eatery not found")
	ErrFeedEmpty      = errors.New("eatery feed returned no data")
)
