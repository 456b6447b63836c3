package countries

import "errors"

var (
	ErrFetchFailed      = errors.New("failed to fetch country list")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("failed to decode country list")
	ErrEmptyList        = errors.New("country list is empty")
	ErrInvalidURL       = errors.New("invalid country source URL")
)
