package game

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
)

func testApp(bank models.WordBank) *models.App {
	return &models.App{
		WordBank:   bank,
		Categories: constants.Categories,
		Sessions:   make(map[string]*models.Session),
		Recent:     make(map[string][]string),
	}
}

func TestSelectWordAvoidsRecent(t *testing.T) {
	pool := []string{"ant", "bee", "cat", "dog", "eel", "fox"}
	app := testApp(models.WordBank{"animal": pool})
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < len(pool); i++ {
		word, err := SelectWord(app, ctx, "animal")
		require.NoError(t, err)
		assert.Contains(t, pool, word)
		_, repeated := seen[word]
		assert.False(t, repeated, "word %q repeated before the pool was exhausted", word)
		seen[word] = struct{}{}
	}
}

func TestSelectWordResetsWhenExhausted(t *testing.T) {
	pool := []string{"ant", "bee", "cat"}
	app := testApp(models.WordBank{"animal": pool})
	ctx := context.Background()

	for i := 0; i < len(pool); i++ {
		_, err := SelectWord(app, ctx, "animal")
		require.NoError(t, err)
	}
	require.Len(t, app.Recent["animal"], len(pool))

	// Ledger now covers the whole pool; the next pick must reset it.
	word, err := SelectWord(app, ctx, "animal")
	require.NoError(t, err)
	assert.Contains(t, pool, word)
	assert.Len(t, app.Recent["animal"], 1)
}

func TestSelectWordLedgerCapped(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	app := testApp(models.WordBank{"object": pool})
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := SelectWord(app, ctx, "object")
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, len(app.Recent["object"]), constants.RecentWordsCap)
}

func TestSelectWordEmptyCategory(t *testing.T) {
	app := testApp(models.WordBank{"animal": {}})
	ctx := context.Background()

	_, err := SelectWord(app, ctx, "animal")
	assert.ErrorIs(t, err, ErrNoWordsAvailable)

	_, err = SelectWord(app, ctx, "no such category")
	assert.ErrorIs(t, err, ErrNoWordsAvailable)
}

func TestRandomCategory(t *testing.T) {
	app := testApp(models.WordBank{})
	for i := 0; i < 20; i++ {
		assert.True(t, lo.Contains(constants.Categories, RandomCategory(app, context.Background())))
	}
}
