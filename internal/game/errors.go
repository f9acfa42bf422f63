package game

import "errors"

var (
	ErrNoWordsAvailable      = errors.New("no words available for category")
	ErrInvalidCategoryResult = errors.New("invalid category result")
	ErrInvalidHintLevel      = errors.New("invalid hint level")
	ErrNoActiveGame          = errors.New("no active game found")
	ErrGameOver              = errors.New("game is already over")
	ErrInvalidMode           = errors.New("missing or invalid game mode")
	ErrMissingWord           = errors.New("missing word for free-choice game")
	ErrMissingQuestion       = errors.New("missing question text")
	ErrInvalidGuess          = errors.New("missing guess text")
)
