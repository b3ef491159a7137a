package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"buddy/internal/config"
	"buddy/internal/database"
	"buddy/internal/handlers"
	"buddy/internal/llm"
	"buddy/internal/repository"
	"buddy/internal/security"
	"buddy/internal/service"
	"buddy/internal/vector"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	tokens, err := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	vocabularyRepo := repository.NewVocabularyRepository(db)
	chunkRepo := repository.NewChunkRepository(db)

	// Model providers
	provider, err := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	if err != nil {
		log.Fatalf("Failed to create model provider: %v", err)
	}
	retrying := llm.WithRetry(provider, llm.DefaultRetryConfig())

	embedder, err := vector.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	store := vector.NewStore(chunkRepo, embedder)

	var illustrator llm.Illustrator
	if cfg.Illustrations {
		illustrator, err = llm.NewDallEIllustrator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ImageModel)
		if err != nil {
			log.Fatalf("Failed to create illustrator: %v", err)
		}
		log.Println("Story illustrations enabled")
	}

	// Services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to create email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, otpRepo, emailService, tokens, cfg.OTPExpiry)
	userService := service.NewUserService(userRepo, emailService)
	quizService := service.NewQuizService(questionRepo, achievementRepo, rewardRepo, store, retrying)
	storyService := service.NewStoryService(storyRepo, vocabularyRepo, settingsRepo, retrying, illustrator)
	vocabularyService := service.NewVocabularyService(vocabularyRepo)
	chatService := service.NewChatService(store, retrying)
	settingsService := service.NewSettingsService(settingsRepo)

	// Handlers
	middleware := handlers.NewMiddleware(tokens)
	google := handlers.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.AppBaseURL, authService)
	authHandler := handlers.NewAuthHandler(authService, userService)
	childHandler := handlers.NewChildHandler(userService, quizService)
	quizHandler := handlers.NewQuizHandler(quizService, userService)
	storyHandler := handlers.NewStoryHandler(storyService, userService)
	vocabularyHandler := handlers.NewVocabularyHandler(vocabularyService)
	chatHandler := handlers.NewChatHandler(chatService, userService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, userService)

	mux := http.NewServeMux()

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/verify-otp", authHandler.VerifyOTP)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	if google != nil {
		mux.HandleFunc("GET /api/auth/google/start", google.Start)
		mux.HandleFunc("GET /api/auth/google/callback", google.Callback)
		log.Println("Google sign-in enabled")
	}
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))

	// Parent routes
	mux.HandleFunc("POST /api/children", middleware.RequireParent(childHandler.CreateChild))
	mux.HandleFunc("GET /api/children", middleware.RequireParent(childHandler.ListChildren))
	mux.HandleFunc("GET /api/children/{childID}", middleware.RequireParent(childHandler.GetChild))
	mux.HandleFunc("PUT /api/children/{childID}/status", middleware.RequireParent(childHandler.SetChildStatus))
	mux.HandleFunc("GET /api/children/{childID}/progress", middleware.RequireParent(childHandler.GetChildProgress))
	mux.HandleFunc("GET /api/children/{childID}/settings", middleware.RequireParent(settingsHandler.GetSettings))
	mux.HandleFunc("PUT /api/children/{childID}/settings", middleware.RequireParent(settingsHandler.UpdateSettings))

	// Child routes
	mux.HandleFunc("POST /api/quiz/questions", middleware.RequireChild(quizHandler.GenerateQuestion))
	mux.HandleFunc("GET /api/quiz/questions", middleware.RequireChild(quizHandler.ListQuestions))
	mux.HandleFunc("POST /api/quiz/questions/{questionID}/answer", middleware.RequireChild(quizHandler.SubmitAnswer))
	mux.HandleFunc("GET /api/quiz/progress", middleware.RequireChild(quizHandler.GetProgress))
	mux.HandleFunc("GET /api/quiz/topics", middleware.RequireChild(quizHandler.ListTopics))
	mux.HandleFunc("POST /api/stories", middleware.RequireChild(storyHandler.GenerateStory))
	mux.HandleFunc("GET /api/stories", middleware.RequireChild(storyHandler.ListStories))
	mux.HandleFunc("GET /api/stories/{storyID}", middleware.RequireChild(storyHandler.GetStory))
	mux.HandleFunc("GET /api/vocabulary", middleware.RequireChild(vocabularyHandler.ListVocabulary))
	mux.HandleFunc("POST /api/chat", middleware.RequireChild(chatHandler.Ask))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
