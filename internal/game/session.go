package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
)

// StartGame builds a fresh session for the requested mode. The returned
// session is always non-nil so callers can store it even when start fails:
// starting discards any in-progress game, and a failed start leaves a
// word-less Idle session behind.
//
// Machine-assigned mode ("single" on the wire) draws from the word bank,
// using the given category or a random one. Any other non-empty mode is
// free-choice: the player's word is classified into a category by the
// generation provider and kept, lowercased, as the secret.
func StartGame(app *models.App, ctx context.Context, mode, category, word string) (*models.Session, error) {
	if strings.TrimSpace(mode) == "" {
		return models.NewSession(""), ErrInvalidMode
	}

	s := models.NewSession(mode)

	if mode == constants.ModeSingle {
		if category == "" {
			category = RandomCategory(app, ctx)
		}
		chosen, err := SelectWord(app, ctx, category)
		if err != nil {
			return s, err
		}
		s.Word = chosen
		s.Category = category
		s.State = models.StateActive
		return s, nil
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return s, ErrMissingWord
	}

	s.State = models.StateAwaitingCategory
	category, err := ClassifyWord(ctx, app.Generator, word)
	if err != nil {
		s.State = models.StateIdle
		return s, err
	}

	s.Word = strings.ToLower(word)
	s.Category = category
	s.State = models.StateActive
	return s, nil
}

// Hint reveals the session word at the requested level and records the level
// on the session. Level 4 is the full reveal and ends the game.
func Hint(s *models.Session, level int) (hint string, gameOver bool, err error) {
	if s == nil || s.Word == "" {
		return "", false, ErrNoActiveGame
	}
	if level < constants.MinHintLevel || level > constants.MaxHintLevel {
		return "", false, ErrInvalidHintLevel
	}
	if s.GameOver {
		return "", false, ErrGameOver
	}

	hint, err = Mask(strings.ToLower(s.Word), level)
	if err != nil {
		return "", false, err
	}

	s.HintLevel = level
	if level == constants.FullRevealLevel {
		s.GameOver = true
		s.State = models.StateOver
	}
	s.LastAccessTime = time.Now()
	return hint, s.GameOver, nil
}

// Ask forwards a yes/no question about the secret word to the generation
// provider. The answer is returned as-is after the wrapper's letters-only
// filter; its content is not checked against "yes"/"no". At the question cap
// the call reports capped=true instead of failing.
func Ask(app *models.App, ctx context.Context, s *models.Session, question string) (answer string, remaining int, capped bool, err error) {
	if s == nil || s.Word == "" {
		return "", 0, false, ErrNoActiveGame
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", 0, false, ErrMissingQuestion
	}
	if s.GameOver {
		return "", 0, false, ErrGameOver
	}
	if s.QuestionsAsked >= constants.MaxQuestions {
		return "", 0, true, nil
	}

	prompt := fmt.Sprintf(
		"Regarding %q, answer the Question: %q. Answer only with yes or no, nothing else.",
		s.Word, question,
	)
	answer, err = app.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", 0, false, fmt.Errorf("answering question: %w", err)
	}

	s.QuestionsAsked++
	s.LastAccessTime = time.Now()
	return answer, constants.MaxQuestions - s.QuestionsAsked, false, nil
}

// Guess resolves a guess against the session and ends the game either way.
// A guess is accepted whenever a secret word exists, hints or not.
func Guess(s *models.Session, text string) (models.GuessOutcome, error) {
	if s == nil || s.Word == "" {
		return models.GuessOutcome{}, ErrNoActiveGame
	}
	guess := strings.ToLower(strings.TrimSpace(text))
	if guess == "" {
		return models.GuessOutcome{}, ErrInvalidGuess
	}

	correct := guess == strings.ToLower(s.Word)
	score := Score(s.QuestionsAsked, s.HintLevel, correct)

	s.GameOver = true
	s.State = models.StateOver
	s.LastAccessTime = time.Now()

	return models.GuessOutcome{
		Correct:   correct,
		Score:     score,
		Word:      s.Word,
		HintsUsed: s.HintLevel,
	}, nil
}
