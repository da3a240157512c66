package usecases

import "errors"

// Errors returned by the music player use cases.
var (
	// ErrNoPlayer is returned when the guild has no active player.
	ErrNoPlayer = errors.New("no active player in this server")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrDifferentVoiceChannel is returned when the user and the bot are in different voice channels.
	ErrDifferentVoiceChannel = errors.New("you must be in the same voice channel as the bot")

	// ErrEmptyQuery is returned when play is called without a query.
	ErrEmptyQuery = errors.New("no song name or URL provided")

	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no results found")

	// ErrQueueEmpty is returned when the queue is empty.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrInvalidVolume is returned when a volume argument is not a number.
	ErrInvalidVolume = errors.New("invalid volume")

	// ErrInvalidLoopMode is returned when a loop argument is not a known mode.
	ErrInvalidLoopMode = errors.New("invalid loop mode")

	// ErrUnknownFilter is returned when a filter name is not recognized.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidBassBoost is returned when the bass boost level is outside 0-5.
	ErrInvalidBassBoost = errors.New("bass boost level must be between 0 and 5")
)
