package genai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

// ErrInvalidFormat marks provider replies that fail the letters-and-spaces
// filter after normalization.
var ErrInvalidFormat = errors.New("invalid response format")

var validReply = regexp.MustCompile(`^[a-z\s]+$`)

// ParseReply normalizes a raw provider reply (trim, lowercase) and validates
// it contains only letters and spaces.
func ParseReply(raw string) (string, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" || !validReply.MatchString(text) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, truncate(raw, 80))
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Retrier is the sole retry/backoff policy around the generation provider.
// Per attempt: quota failures wait 2^attempt * base (1s, 2s, 4s by default)
// then retry; off-format replies retry immediately; any other failure
// propagates at once. Exhausting the attempt budget propagates the last
// observed failure. Nothing else in the repository retries.
type Retrier struct {
	gen      Generator
	attempts int
	base     time.Duration
}

const DefaultAttempts = 3

// NewRetrier wraps gen. attempts <= 0 means DefaultAttempts; base <= 0 means
// one second. Tests pass a tiny base so backoff does not really wait.
func NewRetrier(gen Generator, attempts int, base time.Duration) *Retrier {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if base <= 0 {
		base = time.Second
	}
	return &Retrier{gen: gen, attempts: attempts, base: base}
}

// Generate runs the provider call under the retry policy and returns the
// normalized, validated reply.
func (r *Retrier) Generate(ctx context.Context, prompt string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.base
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = r.base << uint(r.attempts)
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		raw, err := r.gen.Generate(ctx, prompt)
		if err == nil {
			text, perr := ParseReply(raw)
			if perr == nil {
				return text, nil
			}
			util.LogWarn("Generation attempt %d/%d returned off-format text: %v", attempt+1, r.attempts, perr)
			lastErr = perr
			continue
		}

		util.LogWarn("Generation attempt %d/%d failed: %v", attempt+1, r.attempts, err)
		lastErr = err
		if !IsQuota(err) {
			return "", err
		}
		if werr := sleepCtx(ctx, bo.NextBackOff()); werr != nil {
			return "", werr
		}
	}
	return "", lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
