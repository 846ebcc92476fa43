package usecases

import "errors"

var (
	// ErrNoRoutes means no travel profile produced a route.
	ErrNoRoutes = errors.New("no routes found")

	// ErrEmptyUserID is returned when a user-scoped call has no user.
	ErrEmptyUserID = errors.New("user id must not be empty")

	// ErrInvalidCoordinates is returned for out-of-range or non-finite points.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidContact wraps emergency contact validation problems.
	ErrInvalidContact = errors.New("invalid emergency contact")

	errEmptyRoutes = errors.New("provider returned no routes")
)
