package service

import "errors"

var (
	// ErrNoProviderConfigured is returned when an operation needs the user's
	// AI provider and none is set.
	ErrNoProviderConfigured = errors.New("no ai provider configured")

	// ErrDraftLimitExceeded is returned when an upload would push a user past
	// the staging capacity.
	ErrDraftLimitExceeded = errors.New("draft limit exceeded")

	// ErrNoEBayCredentials is returned on publish when the user has not
	// stored eBay application credentials.
	ErrNoEBayCredentials = errors.New("ebay credentials not configured")

	// ErrNoFilesUploaded is returned when a multipart upload carries no files.
	ErrNoFilesUploaded = errors.New("no files uploaded")

	// ErrDraftNotFound is returned when a staged draft image does not exist.
	ErrDraftNotFound = errors.New("draft not found")
)
