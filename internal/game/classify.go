package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	genai "github.com/user-pratik/solomanTHEwise/internal/genai"
)

// ClassifyWord maps free text to exactly one category from the fixed set by
// asking the generation provider. The reply must be a case-sensitive exact
// match against the category list; anything else is ErrInvalidCategoryResult
// and is not retried here (the wrapper already spent its attempt budget).
func ClassifyWord(ctx context.Context, gen genai.Generator, word string) (string, error) {
	prompt := fmt.Sprintf(
		"Which single category from this list does %q best fit into: %s? Respond with just the category name, nothing else.",
		word, strings.Join(constants.Categories, ", "),
	)

	category, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classifying %q: %w", word, err)
	}
	if !lo.Contains(constants.Categories, category) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategoryResult, category)
	}
	return category, nil
}
