package game

import (
	"strings"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
)

// Mask renders the secret word at the given hint level. Levels 1-3 mask each
// space-separated token independently; level 4 returns the word verbatim.
// The function is stateless and level-order-agnostic: callers may jump
// levels and always get the same output for the same inputs.
func Mask(word string, level int) (string, error) {
	if level < constants.MinHintLevel || level > constants.MaxHintLevel {
		return "", ErrInvalidHintLevel
	}
	if level == constants.FullRevealLevel {
		return word, nil
	}

	tokens := strings.Split(word, " ")
	masked := make([]string, len(tokens))
	for i, tok := range tokens {
		masked[i] = maskToken(tok, level)
	}
	return strings.Join(masked, " "), nil
}

func maskToken(tok string, level int) string {
	runes := []rune(tok)
	if len(runes) == 0 {
		return ""
	}
	revealed := revealedIndices(len(runes), level)
	var b strings.Builder
	b.Grow(len(tok))
	for i, r := range runes {
		if _, ok := revealed[i]; ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// revealedIndices returns the index set shown at a masking level: the first
// character from level 1, the last from level 2, and the middle (length/2,
// rounded down) from level 3 for tokens of at least three characters.
func revealedIndices(length, level int) map[int]struct{} {
	idx := make(map[int]struct{}, 3)
	if level >= 1 {
		idx[0] = struct{}{}
	}
	if level >= 2 {
		idx[length-1] = struct{}{}
	}
	if level >= 3 && length >= 3 {
		idx[length/2] = struct{}{}
	}
	return idx
}
