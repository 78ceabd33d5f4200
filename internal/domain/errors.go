package domain

import "errors"

var (
	// ErrMissingAPIKey is returned before any network call when the directory
	// API credential is not configured.
	ErrMissingAPIKey = errors.New("USDA API key is not configured")

	// ErrDirectoryUnavailable is returned when a directory request fails at
	// the transport or HTTP level.
	ErrDirectoryUnavailable = errors.New("directory request failed")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrFarmNotFound is returned when a farm cannot be found.
	ErrFarmNotFound = errors.New("farm not found")

	// ErrProductNotFound is returned when an ordered product is not in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when an order cannot be found.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUserNotFound is returned when no user matches an id or token.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when signing up with an email already in use.
	ErrUserExists = errors.New("user already exists")

	// ErrUnauthorized is returned when a request lacks a valid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrGeocodeFailed is returned when a zip code cannot be resolved to coordinates.
	ErrGeocodeFailed = errors.New("could not geocode zip code")

	// ErrAdvisorUnavailable is returned when the generative advisor is not
	// configured or its request failed.
	ErrAdvisorUnavailable = errors.New("advisor unavailable")
)
