package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	genai "github.com/user-pratik/solomanTHEwise/internal/genai"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
	ratelimit "github.com/user-pratik/solomanTHEwise/internal/ratelimit"
	session "github.com/user-pratik/solomanTHEwise/internal/session"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestApp(bank models.WordBank, gen genai.Generator) *models.App {
	return &models.App{
		WordBank:       bank,
		Categories:     constants.Categories,
		Generator:      gen,
		Sessions:       make(map[string]*models.Session),
		Recent:         make(map[string][]string),
		Limiter:        ratelimit.New(time.Minute, 50),
		StartTime:      time.Now(),
		CookieMaxAge:   time.Hour,
		SessionTTL:     time.Hour,
		RateLimiterTTL: time.Hour,
	}
}

func newTestRouter(app *models.App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(constants.RouteHealth, func(c *gin.Context) { HealthHandler(app, c) })
	r.POST(constants.RouteStartGame, func(c *gin.Context) { StartGameHandler(app, c) })
	r.GET(constants.RouteHint, func(c *gin.Context) { HintHandler(app, c) })
	r.POST(constants.RouteAskQuestion, func(c *gin.Context) { AskQuestionHandler(app, c) })
	r.POST(constants.RouteMakeGuess, func(c *gin.Context) { MakeGuessHandler(app, c) })
	return r
}

const testSessionID = "e2e-session-000001"

func testCookie() *http.Cookie {
	return &http.Cookie{Name: constants.SessionCookieName, Value: testSessionID}
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(testCookie())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(models.WordBank{}, nil)
	r := newTestRouter(app)

	w := perform(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestEndToEndMachineAssignedFlow(t *testing.T) {
	app := newTestApp(models.WordBank{"animal": {"elephant"}}, nil)
	r := newTestRouter(app)

	w := perform(r, http.MethodPost, "/api/start-game", `{"mode":"single","category":"animal"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "animal", body["category"])
	assert.Equal(t, "elephant", body["word"])

	w = perform(r, http.MethodGet, "/api/hint/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "e*******", body["hint"])
	assert.Equal(t, false, body["gameOver"])

	w = perform(r, http.MethodPost, "/api/make-guess", `{"guess":"elephant"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, float64(50), body["score"])
	assert.Equal(t, "elephant", body["word"])
	assert.Equal(t, float64(1), body["hintsUsed"])
}

func TestFullRevealEndsGame(t *testing.T) {
	app := newTestApp(models.WordBank{"animal": {"elephant"}}, nil)
	r := newTestRouter(app)

	perform(r, http.MethodPost, "/api/start-game", `{"mode":"single","category":"animal"}`)

	w := perform(r, http.MethodGet, "/api/hint/4", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "elephant", body["hint"])
	assert.Equal(t, true, body["gameOver"])

	w = perform(r, http.MethodGet, "/api/hint/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartGameFreeChoice(t *testing.T) {
	gen := &fakeGenerator{reply: "animal"}
	app := newTestApp(models.WordBank{}, gen)
	r := newTestRouter(app)

	w := perform(r, http.MethodPost, "/api/start-game", `{"mode":"custom","word":"Tiger"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "animal", body["category"])
	assert.NotContains(t, body, "word", "free-choice starts must not echo the secret")

	w = perform(r, http.MethodGet, "/api/hint/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t****", decode(t, w)["hint"])
}

func TestStartGameClassificationFailure(t *testing.T) {
	gen := &fakeGenerator{reply: "pasta"}
	app := newTestApp(models.WordBank{}, gen)
	r := newTestRouter(app)

	w := perform(r, http.MethodPost, "/api/start-game", `{"mode":"custom","word":"carbonara"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constants.MsgStartFailed, decode(t, w)["error"])

	// The failed start still reset the session, so no game is active.
	w = perform(r, http.MethodGet, "/api/hint/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.MsgNoActiveGame, decode(t, w)["error"])
}

func TestStartGameQuotaSurfacesBusy(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("denied: %w", genai.ErrQuotaExhausted)}
	app := newTestApp(models.WordBank{}, gen)
	r := newTestRouter(app)

	w := perform(r, http.MethodPost, "/api/start-game", `{"mode":"custom","word":"tiger"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constants.MsgServiceBusy, decode(t, w)["error"])
}

func TestStartGameValidation(t *testing.T) {
	app := newTestApp(models.WordBank{}, nil)
	r := newTestRouter(app)

	w := perform(r, http.MethodPost, "/api/start-game", `{"category":"animal"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/start-game", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHintValidation(t *testing.T) {
	app := newTestApp(models.WordBank{}, nil)
	r := newTestRouter(app)

	w := perform(r, http.MethodGet, "/api/hint/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.MsgNoActiveGame, decode(t, w)["error"])

	session.Save(app, testSessionID, activeTestSession("elephant"))
	for _, level := range []string{"0", "9", "abc"} {
		w = perform(r, http.MethodGet, "/api/hint/"+level, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "level %s", level)
		assert.Equal(t, constants.MsgInvalidLevel, decode(t, w)["error"])
	}
}

func TestAskQuestion(t *testing.T) {
	gen := &fakeGenerator{reply: "yes"}
	app := newTestApp(models.WordBank{}, gen)
	r := newTestRouter(app)
	session.Save(app, testSessionID, activeTestSession("elephant"))

	w := perform(r, http.MethodPost, "/api/ask-question", `{"question":"Is it alive?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "yes", body["answer"])
	assert.Equal(t, float64(49), body["questionsRemaining"])
}

func TestAskQuestionCap(t *testing.T) {
	app := newTestApp(models.WordBank{}, &fakeGenerator{reply: "yes"})
	r := newTestRouter(app)
	s := activeTestSession("elephant")
	s.QuestionsAsked = constants.MaxQuestions
	session.Save(app, testSessionID, s)

	w := perform(r, http.MethodPost, "/api/ask-question", `{"question":"Is it alive?"}`)
	require.Equal(t, http.StatusOK, w.Code, "the question cap is a soft result, not a failure")
	assert.Equal(t, constants.MsgMaxQuestions, decode(t, w)["error"])
}

func TestAskQuestionQuotaSurfacesBusy(t *testing.T) {
	app := newTestApp(models.WordBank{}, &fakeGenerator{err: errors.New("quota exceeded")})
	r := newTestRouter(app)
	session.Save(app, testSessionID, activeTestSession("elephant"))

	w := perform(r, http.MethodPost, "/api/ask-question", `{"question":"Is it alive?"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constants.MsgServiceBusy, decode(t, w)["error"])
}

func TestMakeGuessWrongEndsSession(t *testing.T) {
	app := newTestApp(models.WordBank{}, nil)
	r := newTestRouter(app)
	session.Save(app, testSessionID, activeTestSession("elephant"))

	w := perform(r, http.MethodPost, "/api/make-guess", `{"guess":"rhino"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, float64(0), body["score"])
	assert.Equal(t, "elephant", body["word"])
}

func TestMakeGuessMalformed(t *testing.T) {
	app := newTestApp(models.WordBank{}, nil)
	r := newTestRouter(app)
	session.Save(app, testSessionID, activeTestSession("elephant"))

	w := perform(r, http.MethodPost, "/api/make-guess", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constants.MsgGuessFailed, decode(t, w)["error"])
}

func activeTestSession(word string) *models.Session {
	s := models.NewSession(constants.ModeSingle)
	s.Word = word
	s.State = models.StateActive
	return s
}
