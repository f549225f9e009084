package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/postplannerhq/postplanner/configs"
	"github.com/postplannerhq/postplanner/internal/api/handlers"
	"github.com/postplannerhq/postplanner/internal/api/middleware"
	job "github.com/postplannerhq/postplanner/internal/jobs"
	"github.com/postplannerhq/postplanner/internal/queue"
	"github.com/postplannerhq/postplanner/internal/ratelimit"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    20 * 1024 * 1024, // 20 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	presetRepo := repository.NewPresetRepository(db)
	scheduledContentRepo := repository.NewScheduledContentRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	var limitStore ratelimit.Store
	if cfg.RedisURI != "" {
		limitStore = ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisURI}))
	} else {
		limitStore = ratelimit.NewMemoryStore()
	}

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	usageService := service.NewUsageService(usageRepo, subscriptionRepo)
	subscriptionService := service.NewSubscriptionService(*cfg, subscriptionRepo)
	generationService := service.NewGenerationService(
		service.NewOpenAIProvider(cfg.OpenAIApiKey),
		service.NewAnthropicProvider(cfg.AnthropicApiKey),
	)
	presetService := service.NewPresetService(presetRepo)
	codecService := service.NewCodecService()
	schedulerService := service.NewSchedulerService(presetRepo, scheduledContentRepo, generationService, usageService)
	scheduledContentService := service.NewScheduledContentService(scheduledContentRepo, usageService)
	contentService := service.NewContentService(postRepo, categoryRepo)
	urlParserService := service.NewURLParserService()
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limitStore)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Post("/logout", auth.Logout)

	payment := handlers.NewPaymentHandler(subscriptionService)
	app.Post("/webhooks/payment", payment.PaymentWebhook)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService, subscriptionService, usageService)
	api.Get("/user/info", user.GetUserInfo)
	api.Get("/user/subscription", user.GetSubscription)
	api.Get("/user/usage", user.GetUsage)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	preset := handlers.NewPresetHandler(presetService, codecService, schedulerService, usageService, r2Service, client)
	api.Post("/presets", preset.CreatePreset)
	api.Get("/presets", preset.ListPresets)
	api.Put("/presets/:id", preset.UpdatePreset)
	api.Delete("/presets/:id", preset.RemovePreset)
	api.Post("/presets/import", preset.ImportPresets)
	api.Get("/presets/export", preset.ExportPresets)
	api.Post("/presets/:id/apply",
		rateLimitMiddleware.Limit("generate-week", 5, time.Minute),
		preset.ApplyPreset)

	generate := handlers.NewGenerateHandler(generationService, schedulerService)
	api.Post("/generate/week",
		rateLimitMiddleware.Limit("generate-week", 5, time.Minute),
		generate.GenerateWeek)
	api.Post("/ai/generate",
		rateLimitMiddleware.Limit("ai-generate", 20, time.Minute),
		generate.Generate)
	api.Post("/ai/variation", generate.Variation)
	api.Post("/ai/improve", generate.Improve)
	api.Post("/ai/hashtags", generate.Hashtags)
	api.Post("/ai/analyze", generate.Analyze)

	parseURL := handlers.NewParseURLHandler(urlParserService)
	api.Post("/parse-url",
		rateLimitMiddleware.Limit("parse-url", 10, time.Minute),
		parseURL.ParseURL)

	schedule := handlers.NewScheduleHandler(scheduledContentService, codecService, usageService, r2Service)
	api.Post("/schedule", schedule.CreateEntry)
	api.Get("/schedule", schedule.ListEntries)
	api.Put("/schedule/:id", schedule.UpdateEntry)
	api.Put("/schedule/:id/status", schedule.UpdateStatus)
	api.Delete("/schedule/:id", schedule.RemoveEntry)
	api.Get("/schedule/export", schedule.ExportSchedule)

	post := handlers.NewPostHandler(contentService)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Put("/posts/:id", post.UpdatePost)
	api.Post("/posts/:id/used", post.SetPostUsed)
	api.Delete("/posts/:id", post.RemovePost)
	api.Get("/categories", post.ListCategories)
	api.Post("/categories", post.CreateCategory)
	api.Delete("/categories/:id", post.RemoveCategory)

	// cron jobs
	sweepJob := job.NewRateLimitSweepJob(limitStore)

	//queue
	queueW := queue.NewQueue(schedulerService)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", sweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeApplyPreset, queueW.HandleApplyPresetTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
