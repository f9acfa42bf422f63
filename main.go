package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	config "github.com/user-pratik/solomanTHEwise/internal/config"
	constants "github.com/user-pratik/solomanTHEwise/internal/constants"
	genai "github.com/user-pratik/solomanTHEwise/internal/genai"
	handlers "github.com/user-pratik/solomanTHEwise/internal/handlers"
	models "github.com/user-pratik/solomanTHEwise/internal/models"
	ratelimit "github.com/user-pratik/solomanTHEwise/internal/ratelimit"
	session "github.com/user-pratik/solomanTHEwise/internal/session"
	util "github.com/user-pratik/solomanTHEwise/internal/util"
)

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	util.InitLogger(isProduction)
	util.LogInfo("Starting Soloman in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	cfg, err := config.Load()
	if err != nil {
		util.LogFatal("Failed to load configuration: %v", err)
	}

	wordBank, err := loadWordBank(cfg.WordBankPath)
	if err != nil {
		util.LogFatal("Failed to load word bank: %v", err)
	}

	client := genai.NewClient(genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		RPS:     cfg.GeminiRPS,
		Timeout: cfg.GeminiTimeout,
	})

	app := &models.App{
		WordBank:       wordBank,
		Categories:     constants.Categories,
		Generator:      genai.NewRetrier(client, cfg.GenerateAttempts, cfg.BackoffBase),
		Sessions:       make(map[string]*models.Session),
		Recent:         make(map[string][]string),
		Limiter:        ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax),
		IsProduction:   isProduction,
		StartTime:      time.Now(),
		CookieMaxAge:   cfg.CookieMaxAge,
		SessionTTL:     cfg.SessionTTL,
		RateLimiterTTL: cfg.RateLimiterTTL,
	}

	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		util.LogWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(constants.RouteHealth, func(c *gin.Context) { handlers.HealthHandler(app, c) })
	router.POST(constants.RouteStartGame, rateLimitMiddleware(app), func(c *gin.Context) { handlers.StartGameHandler(app, c) })
	router.GET(constants.RouteHint, func(c *gin.Context) { handlers.HintHandler(app, c) })
	router.POST(constants.RouteAskQuestion, rateLimitMiddleware(app), func(c *gin.Context) { handlers.AskQuestionHandler(app, c) })
	router.POST(constants.RouteMakeGuess, func(c *gin.Context) { handlers.MakeGuessHandler(app, c) })

	startCleanupRoutines(app)

	startServer(router, cfg.Port)
}

func loadWordBank(path string) (models.WordBank, error) {
	util.LogInfo("Loading word bank from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bank models.WordBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, err
	}

	total := 0
	for _, category := range constants.Categories {
		words := bank[category]
		if len(words) == 0 {
			util.LogWarn("Category %q has no words; machine-assigned games for it will fail", category)
			continue
		}
		total += len(words)
	}
	util.LogInfo("Loaded %d words across %d categories", total, len(bank))
	return bank, nil
}

func startCleanupRoutines(app *models.App) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			session.CleanupExpired(app)
		}
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			app.Limiter.Cleanup(app.RateLimiterTTL)
		}
	}()

	util.LogInfo("Started cleanup routines for sessions and rate-limit ledgers")
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		util.LogInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			util.LogWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	util.LogInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		util.LogFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	util.LogInfo("Server shutdown complete")
}
