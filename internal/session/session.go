// Package session owns the cookie-keyed session store. Each player gets
// their own Session value instead of a process-wide global; the store is an
// in-memory map suitable for a single-process deployment.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

// GetOrCreateSessionID reads the session cookie, minting a new ID and
// setting the cookie when absent or malformed.
func GetOrCreateSessionID(app *models.App, c *gin.Context) string {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(constants.SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		util.LogInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// Get returns the stored session for the ID, or a fresh word-less Idle
// session when none exists. The caller decides whether to store it.
func Get(app *models.App, sessionID string) *models.Session {
	app.SessionMutex.RLock()
	s, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		s.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return s
	}
	return models.NewSession("")
}

// Save stores the session under the ID, replacing whatever was there. Game
// starts go through here so the whole Session value is superseded at once.
func Save(app *models.App, sessionID string, s *models.Session) {
	app.SessionMutex.Lock()
	s.LastAccessTime = time.Now()
	app.Sessions[sessionID] = s
	app.SessionMutex.Unlock()
}

// Count reports how many sessions are stored.
func Count(app *models.App) int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}

// CleanupExpired drops sessions idle longer than the configured TTL.
func CleanupExpired(app *models.App) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	now := time.Now()
	expiredCount := 0
	for sessionID, s := range app.Sessions {
		if now.Sub(s.LastAccessTime) > app.SessionTTL {
			delete(app.Sessions, sessionID)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		util.LogInfo("Cleaned up %d expired sessions", expiredCount)
	}
}
