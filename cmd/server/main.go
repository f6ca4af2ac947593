package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golfacademy/internal/config"
	"golfacademy/internal/database"
	"golfacademy/internal/events"
	"golfacademy/internal/handlers"
	"golfacademy/internal/repository"
	"golfacademy/internal/security"
	"golfacademy/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedDrillCatalog(db); err != nil {
		log.Fatalf("Failed to seed drill catalog: %v", err)
	}

	bus := events.NewBus()
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roundRepo := repository.NewRoundRepository(db)
	drillRepo := repository.NewDrillRepository(db)
	planRepo := repository.NewPlanRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Email is optional; without a sender address the app runs without it
	var emailService *service.EmailService
	if cfg.SESFromEmail != "" {
		emailService, err = service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize email service: %v", err)
		}
	}

	seed := cfg.PlanSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Services
	statsService := service.NewStatsService(roundRepo)
	planService := service.NewPlanService(drillRepo, planRepo, statsService, rng)
	progressService := service.NewProgressService(progressRepo, planRepo, bus)
	roundService := service.NewRoundService(roundRepo, bus)
	leaderboardService := service.NewLeaderboardService(progressRepo)
	authService := service.NewAuthService(userRepo, emailService, cfg.SessionDuration)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTDuration)

	if err := leaderboardService.Run(ctx, bus); err != nil {
		log.Fatalf("Failed to start leaderboard refresher: %v", err)
	}

	// Handlers
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	authLimiter := security.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	mw := handlers.NewMiddleware(authService, tokenService, csrf, authLimiter)

	authHandler := handlers.NewAuthHandler(authService, tokenService, csrf)
	oauthHandler := handlers.NewOAuthHandler(authHandler, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase)
	roundHandler := handlers.NewRoundHandler(roundService)
	drillHandler := handlers.NewDrillHandler(drillRepo)
	planHandler := handlers.NewPlanHandler(planService, progressService)
	progressHandler := handlers.NewProgressHandler(progressService, statsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	secured := func(h http.HandlerFunc) http.HandlerFunc {
		return mw.CSRFProtect(mw.RequireAuth(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", mw.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", mw.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", mw.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/token", secured(authHandler.IssueToken))
	mux.HandleFunc("PUT /api/auth/profile", secured(authHandler.UpdateProfile))
	mux.HandleFunc("PUT /api/auth/password", secured(authHandler.ChangePassword))
	mux.HandleFunc("POST /api/auth/forgot-password", mw.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", mw.RateLimit(authHandler.ResetPassword))
	if oauthHandler != nil {
		mux.HandleFunc("GET /api/auth/google/start", oauthHandler.Start)
		mux.HandleFunc("GET /api/auth/google/callback", oauthHandler.Callback)
	}

	// Rounds
	mux.HandleFunc("POST /api/rounds", secured(roundHandler.Create))
	mux.HandleFunc("GET /api/rounds", mw.RequireAuth(roundHandler.List))
	mux.HandleFunc("GET /api/rounds/summary", mw.RequireAuth(roundHandler.Summary))
	mux.HandleFunc("GET /api/rounds/{id}", mw.RequireAuth(roundHandler.Get))
	mux.HandleFunc("DELETE /api/rounds/{id}", secured(roundHandler.Delete))

	// Drill catalog
	mux.HandleFunc("GET /api/drills", mw.RequireAuth(drillHandler.List))
	mux.HandleFunc("GET /api/drills/{id}", mw.RequireAuth(drillHandler.Get))

	// Weekly plan
	mux.HandleFunc("GET /api/plan", mw.RequireAuth(planHandler.Get))
	mux.HandleFunc("POST /api/plan", secured(planHandler.Generate))
	mux.HandleFunc("POST /api/plan/{day}/drills/{index}/swap", secured(planHandler.Swap))
	mux.HandleFunc("POST /api/plan/{day}/drills/{index}/complete", secured(planHandler.Complete))

	// Progress
	mux.HandleFunc("GET /api/progress", mw.RequireAuth(progressHandler.Summary))
	mux.HandleFunc("GET /api/progress/stats", mw.RequireAuth(progressHandler.Stats))
	mux.HandleFunc("POST /api/progress/freestyle", secured(progressHandler.LogFreestyle))
	mux.HandleFunc("GET /api/progress/activity", mw.RequireAuth(progressHandler.Activity))

	// Leaderboard
	mux.HandleFunc("GET /api/leaderboard", mw.RequireAuth(leaderboardHandler.Top))

	// Background workers
	go sessionCleanupWorker(ctx, authService)
	if cfg.WeeklySummary && emailService != nil {
		go weeklySummaryWorker(ctx, userRepo, roundService, progressService, emailService)
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// sessionCleanupWorker removes expired sessions and reset tokens hourly
func sessionCleanupWorker(ctx context.Context, authService *service.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.CleanupExpired()
		}
	}
}

// weeklySummaryWorker emails opted-in users their summary on Monday mornings
func weeklySummaryWorker(ctx context.Context, users *repository.UserRepository, rounds *service.RoundService, progress *service.ProgressService, email *service.EmailService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	var lastSent string
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			day := now.Format("2006-01-02")
			if now.Weekday() != time.Monday || now.Hour() < 7 || lastSent == day {
				continue
			}
			lastSent = day
			sendWeeklySummaries(ctx, users, rounds, progress, email)
		}
	}
}

func sendWeeklySummaries(ctx context.Context, users *repository.UserRepository, rounds *service.RoundService, progress *service.ProgressService, email *service.EmailService) {
	recipients, err := users.ListWeeklyEmailUsers()
	if err != nil {
		log.Printf("Failed to list weekly email users: %v", err)
		return
	}

	for _, user := range recipients {
		summary, err := rounds.Summary(user.ID)
		if err != nil {
			log.Printf("Failed to build summary for user %d: %v", user.ID, err)
			continue
		}
		p, err := progress.Get(user.ID)
		if err != nil {
			log.Printf("Failed to load progress for user %d: %v", user.ID, err)
			continue
		}
		level := service.LevelForXP(p.TotalXP)
		if err := email.SendWeeklySummary(ctx, user.Email, user.Name, summary, level, p.TotalXP); err != nil {
			log.Printf("Failed to send weekly summary to user %d: %v", user.ID, err)
		}
	}
	log.Printf("Weekly summaries sent to %d users", len(recipients))
}
