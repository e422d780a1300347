package tournament

import "errors"

var (
	// ErrInvalidName is returned when a player name is empty after trimming.
	ErrInvalidName = errors.New("invalid player name")
	// ErrDuplicateName is returned when a player with the same trimmed name is registered.
	ErrDuplicateName = errors.New("player already registered")
	// ErrInvalidSettings is returned for a court count or target outside the supported values.
	ErrInvalidSettings = errors.New("invalid tournament settings")
	// ErrMatchNotFound is returned when a score targets a match that is not in the current round.
	ErrMatchNotFound = errors.New("match not found in current round")
	// ErrNoRoundInProgress is returned when a round is submitted while no matches are pending.
	ErrNoRoundInProgress = errors.New("no round in progress")
	// ErrUnknownPlayer signals a match naming a player that is not on the roster.
	// It is a programming error, never the result of user input.
	ErrUnknownPlayer = errors.New("match references unregistered player")
	// ErrInvalidMatch signals a match that does not name four distinct players.
	ErrInvalidMatch = errors.New("match does not name four distinct players")
)
