// Package genai wraps the external text-generation provider. The Client is
// the only code in the repository that talks to the provider; everything
// else sees the Generator interface, normally through a Retrier.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

// Generator produces free text for a natural-language prompt. Calls may fail
// transiently (quota) or return off-format text; callers are expected to go
// through a Retrier rather than use a Client directly.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrQuotaExhausted marks provider failures caused by rate limiting or quota
// exhaustion. These are the only failures worth retrying.
var ErrQuotaExhausted = errors.New("generation quota exhausted")

type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	RPS     int
	Timeout time.Duration
}

// Client calls the Gemini generateContent REST endpoint. A client-side
// limiter keeps the process under the configured provider RPS so the retry
// layer sees fewer quota errors in the first place.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg ClientConfig) *Client {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for provider limiter: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("provider returned 429: %w", ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		var parsed generateResponse
		if jerr := json.Unmarshal(data, &parsed); jerr == nil && parsed.Error != nil {
			if parsed.Error.Code == http.StatusTooManyRequests ||
				strings.Contains(strings.ToLower(parsed.Error.Status), "resource_exhausted") {
				return "", fmt.Errorf("provider error %d (%s): %w", parsed.Error.Code, parsed.Error.Status, ErrQuotaExhausted)
			}
			return "", fmt.Errorf("provider error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		util.LogWarn("Provider returned no candidates for prompt of %d bytes", len(prompt))
		return "", errors.New("provider returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// IsQuota reports whether err signals provider rate limiting. The string
// checks mirror the original quota detection, which matched on "429" and
// "quota" anywhere in the error message.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota")
}
