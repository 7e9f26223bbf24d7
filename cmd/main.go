package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/joho/godotenv"
  "github.com/giffyduck/insightnotes-backend/internal/chathistory"
  "github.com/giffyduck/insightnotes-backend/internal/db"
  "github.com/giffyduck/insightnotes-backend/internal/handlers"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/middleware"
  "github.com/giffyduck/insightnotes-backend/internal/repos"
  "github.com/giffyduck/insightnotes-backend/internal/server"
  "github.com/giffyduck/insightnotes-backend/internal/services"
  "github.com/giffyduck/insightnotes-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  chatHistoryPath := utils.GetEnv("CHAT_HISTORY_PATH", "data/chat_histories.json", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  noteRepo := repos.NewNoteRepo(thePG, log)
  writingRepo := repos.NewCreativeWritingRepo(thePG, log)

  // Chat history store
  historyStore, err := chathistory.NewFileStore(chatHistoryPath, log)
  if err != nil {
    log.Error("Could not init chat history store", "error", err)
    os.Exit(1)
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  noteService := services.NewNoteService(thePG, log, noteRepo)
  writingService := services.NewCreativeWritingService(thePG, log, writingRepo)
  geminiClient, err := services.NewGeminiClient(context.Background(), log)
  if err != nil {
    // Serve everything else; the assistant answers with an inline
    // configuration-error bubble until a key is provided.
    log.Warn("Could not init GeminiClient", "error", err)
    geminiClient = nil
  }
  assistantService := services.NewAssistantService(log, geminiClient, noteService, writingService, historyStore)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  noteHandler := handlers.NewNoteHandler(noteService)
  writingHandler := handlers.NewCreativeWritingHandler(writingService)
  chatHandler := handlers.NewChatHandler(assistantService, historyStore)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:            authHandler,
    AuthMiddleware:         authMiddleware,
    UserHandler:            userHandler,
    NoteHandler:            noteHandler,
    CreativeWritingHandler: writingHandler,
    ChatHandler:            chatHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
