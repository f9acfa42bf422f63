package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"

	"github.com/samber/lo"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

// SelectWord picks a word for the category uniformly at random, skipping
// words in the category's recent-words ledger. When the ledger covers every
// candidate it is cleared and the whole pool becomes eligible again. The
// chosen word is appended to the ledger, trimmed to the most recent five.
//
// An absent or empty candidate list is a configuration error, not retried.
func SelectWord(app *models.App, ctx context.Context, category string) (string, error) {
	candidates := app.WordBank[category]
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoWordsAvailable, category)
	}

	app.RecentMutex.Lock()
	defer app.RecentMutex.Unlock()

	recent := app.Recent[category]
	available := lo.Filter(candidates, func(w string, _ int) bool {
		return !slices.Contains(recent, w)
	})
	if len(available) == 0 {
		logCtx(ctx, "All %d words in category %q recently used, resetting ledger", len(candidates), category)
		recent = recent[:0]
		available = candidates
	}

	chosen := available[randomIndex(ctx, len(available))]

	recent = append(recent, chosen)
	if len(recent) > constants.RecentWordsCap {
		recent = recent[len(recent)-constants.RecentWordsCap:]
	}
	app.Recent[category] = recent

	logCtx(ctx, "Selected word from %d available options in category %q", len(available), category)
	return chosen, nil
}

// RandomCategory picks uniformly among the fixed category set.
func RandomCategory(app *models.App, ctx context.Context) string {
	return app.Categories[randomIndex(ctx, len(app.Categories))]
}

func randomIndex(ctx context.Context, n int) int {
	select {
	case <-ctx.Done():
		util.LogWarn("Random selection cancelled: %v, using fallback", ctx.Err())
		return 0
	default:
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		util.LogWarn("Error generating random number: %v, using fallback", err)
		return 0
	}
	return int(v.Int64())
}

func logCtx(ctx context.Context, format string, v ...any) {
	if reqID, _ := ctx.Value(constants.RequestIDKey).(string); reqID != "" {
		util.LogInfo("[request_id=%v] "+format, append([]any{reqID}, v...)...)
		return
	}
	util.LogInfo(format, v...)
}
