package models

import (
	"sync"
	"time"

	genai "github.com/user-pratik/solomanTHEwise/internal/genai"
	ratelimit "github.com/user-pratik/solomanTHEwise/internal/ratelimit"
)

// State is the session lifecycle position.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingCategory State = "awaiting_category"
	StateActive           State = "active"
	StateOver             State = "over"
)

// Session is the mutable record of one in-progress or just-finished game.
// GameOver, HintLevel and QuestionsAsked are monotonic within a session;
// starting a new game replaces the whole value rather than resetting fields.
type Session struct {
	Word           string    `json:"word"`
	Category       string    `json:"category"`
	Mode           string    `json:"mode"`
	QuestionsAsked int       `json:"questionsAsked"`
	HintLevel      int       `json:"hintLevel"`
	GameOver       bool      `json:"gameOver"`
	State          State     `json:"state"`
	LastAccessTime time.Time `json:"lastAccessTime"`
}

// NewSession returns a fresh word-less session in the given mode. No
// gameplay operation accepts it until a start assigns a word.
func NewSession(mode string) *Session {
	return &Session{
		Mode:           mode,
		State:          StateIdle,
		LastAccessTime: time.Now(),
	}
}

// GuessOutcome is the result of resolving a guess against a session.
type GuessOutcome struct {
	Correct   bool   `json:"correct"`
	Score     int    `json:"score"`
	Word      string `json:"word"`
	HintsUsed int    `json:"hintsUsed"`
}

// WordBank maps category name to its candidate words.
type WordBank map[string][]string

type App struct {
	WordBank   WordBank
	Categories []string

	Generator genai.Generator

	Sessions     map[string]*Session
	SessionMutex sync.RWMutex

	// Recent holds the per-category recent-words ledgers guarding against
	// immediate repeats in machine-assigned mode.
	Recent      map[string][]string
	RecentMutex sync.Mutex

	Limiter *ratelimit.Limiter

	IsProduction bool
	StartTime    time.Time

	CookieMaxAge   time.Duration
	SessionTTL     time.Duration
	RateLimiterTTL time.Duration
}
