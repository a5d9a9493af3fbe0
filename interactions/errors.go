package interactions

import "errors"

var (
	// ErrUnauthenticated is returned for mutating actions when no viewer
	// identity is bound. Views surface this as a login prompt.
	ErrUnauthenticated = errors.New("viewer is not authenticated")

	// ErrToggleInFlight is returned when a like toggle is invoked while a
	// previous one for the same post has not resolved yet.
	ErrToggleInFlight = errors.New("like toggle already in flight")

	// ErrNotBound is returned for actions on a projection that has been torn
	// down or never finished binding.
	ErrNotBound = errors.New("projection is not bound")
)
