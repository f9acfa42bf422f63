package constants

type ContextKey string

const (
	MaxQuestions    = 50
	BaseScore       = 50
	HintPenaltyStep = 5
	MinHintLevel    = 1
	MaxHintLevel    = 4
	FullRevealLevel = 4
	RecentWordsCap  = 5
)

const (
	// ModeSingle is the wire value for machine-assigned play; the original
	// client sends "single". Any other non-empty mode is free-choice.
	ModeSingle     = "single"
	ModeFreeChoice = "custom"
)

const (
	SessionCookieName = "session_id"
)

const (
	RouteHealth      = "/api/health"
	RouteStartGame   = "/api/start-game"
	RouteHint        = "/api/hint/:level"
	RouteAskQuestion = "/api/ask-question"
	RouteMakeGuess   = "/api/make-guess"
)

const (
	MsgRateLimited    = "Too many requests. Please wait a minute before trying again."
	MsgServiceBusy    = "Service is busy. Please try again shortly."
	MsgStartFailed    = "Failed to start game. Please try again."
	MsgQuestionFailed = "Failed to process question. Please try again."
	MsgGuessFailed    = "Failed to process guess"
	MsgNoActiveGame   = "No active game found"
	MsgInvalidLevel   = "Invalid hint level"
	MsgMaxQuestions   = "Maximum questions reached"
)

const (
	RequestIDKey ContextKey = "request_id"
)

// Categories is the fixed set the classifier may return and the word bank is
// keyed by. Order matters only for prompt construction.
var Categories = []string{
	"famous person",
	"company",
	"animal",
	"object",
	"place",
	"food",
	"movie",
	"book",
	"sport",
	"musical instrument",
	"historical event",
	"scientific discovery",
	"technology brand",
	"video game",
	"TV show",
}
