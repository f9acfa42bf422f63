package handlers

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	game "github.com/user-pratik/solomanTHEwise/internal/game"
	genai "github.com/user-pratik/solomanTHEwise/internal/genai"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
	session "github.com/user-pratik/solomanTHEwise/internal/session"
	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

type startGameRequest struct {
	Mode     string `json:"mode"`
	Category string `json:"category"`
	Word     string `json:"word"`
}

type askQuestionRequest struct {
	Question string `json:"question"`
}

type makeGuessRequest struct {
	Guess string `json:"guess"`
}

func HealthHandler(app *models.App, c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"categories":      len(app.Categories),
		"active_sessions": session.Count(app),
		"active_limiters": app.Limiter.Len(),
		"memory_alloc_mb": m.Alloc / 1024 / 1024,
		"uptime":          util.FormatUptime(time.Since(app.StartTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// StartGameHandler resets the caller's session and starts a new game. The
// fresh session is saved even when start fails, so a failed start leaves no
// in-progress game behind.
func StartGameHandler(app *models.App, c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSessionID(app, c)

	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := game.StartGame(app, ctx, req.Mode, req.Category, req.Word)
	session.Save(app, sessionID, s)
	if err != nil {
		util.LogError("Error starting game for session %s: %v", sessionID, err)
		switch {
		case errors.Is(err, game.ErrInvalidMode), errors.Is(err, game.ErrMissingWord):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case genai.IsQuota(err):
			c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgServiceBusy})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgStartFailed})
		}
		return
	}

	util.LogInfo("Session %s started %s game in category %q", sessionID, s.Mode, s.Category)

	resp := gin.H{
		"success":  true,
		"message":  "Game started",
		"category": s.Category,
	}
	if s.Mode == constants.ModeSingle {
		// The client masks the word itself in machine-assigned mode.
		resp["word"] = s.Word
	}
	c.JSON(http.StatusOK, resp)
}

func HintHandler(app *models.App, c *gin.Context) {
	sessionID := session.GetOrCreateSessionID(app, c)
	s := session.Get(app, sessionID)

	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.MsgInvalidLevel})
		return
	}

	hint, gameOver, err := game.Hint(s, level)
	if err != nil {
		status := http.StatusBadRequest
		msg := err.Error()
		switch {
		case errors.Is(err, game.ErrNoActiveGame):
			msg = constants.MsgNoActiveGame
		case errors.Is(err, game.ErrInvalidHintLevel):
			msg = constants.MsgInvalidLevel
		case errors.Is(err, game.ErrGameOver):
		default:
			status = http.StatusInternalServerError
			msg = "Server error while processing hint"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	util.LogInfo("Session %s revealed hint level %d", sessionID, level)
	c.JSON(http.StatusOK, gin.H{"hint": hint, "gameOver": gameOver})
}

func AskQuestionHandler(app *models.App, c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := session.GetOrCreateSessionID(app, c)
	s := session.Get(app, sessionID)

	var req askQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	answer, remaining, capped, err := game.Ask(app, ctx, s, req.Question)
	if err != nil {
		util.LogError("Error processing question for session %s: %v", sessionID, err)
		switch {
		case errors.Is(err, game.ErrNoActiveGame), errors.Is(err, game.ErrMissingQuestion), errors.Is(err, game.ErrGameOver):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case genai.IsQuota(err):
			c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgServiceBusy})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgQuestionFailed})
		}
		return
	}
	if capped {
		// Soft result, not a failure: the 50-question budget is spent.
		c.JSON(http.StatusOK, gin.H{"error": constants.MsgMaxQuestions})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":             answer,
		"questionsRemaining": remaining,
	})
}

func MakeGuessHandler(app *models.App, c *gin.Context) {
	sessionID := session.GetOrCreateSessionID(app, c)
	s := session.Get(app, sessionID)

	var req makeGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgGuessFailed})
		return
	}

	outcome, err := game.Guess(s, req.Guess)
	if err != nil {
		util.LogError("Error processing guess for session %s: %v", sessionID, err)
		if errors.Is(err, game.ErrNoActiveGame) {
			c.JSON(http.StatusBadRequest, gin.H{"error": constants.MsgNoActiveGame})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": constants.MsgGuessFailed})
		return
	}

	util.LogInfo("Session %s guessed %q: correct=%v score=%d", sessionID, req.Guess, outcome.Correct, outcome.Score)
	c.JSON(http.StatusOK, outcome)
}
