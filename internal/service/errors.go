package service

import "errors"

var (
	// ErrValidation marks client input the API should reject with a 400.
	ErrValidation = errors.New("invalid input")

	// ErrGenerationUnavailable means every configured AI provider failed.
	ErrGenerationUnavailable = errors.New("no AI provider available")

	// ErrEmptyPreset means a weekly generation was requested for a preset
	// with no enabled days.
	ErrEmptyPreset = errors.New("preset has no enabled days")

	// ErrSSRFRejected means a URL failed the private-address guard before
	// any network call was made.
	ErrSSRFRejected = errors.New("url refused by address guard")

	// ErrFetchTimeout means a remote page did not respond within the fetch
	// deadline.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrRateLimited means the caller exhausted a fixed request window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrLimitReached means a subscription tier quota is exhausted.
	ErrLimitReached = errors.New("plan limit reached")

	// ErrNotFound marks a lookup for a row the caller does not have.
	ErrNotFound = errors.New("not found")
)
