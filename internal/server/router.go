package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/giffyduck/insightnotes-backend/internal/handlers"
  "github.com/giffyduck/insightnotes-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler            *handlers.AuthHandler
  AuthMiddleware         *middleware.AuthMiddleware
  UserHandler            *handlers.UserHandler
  NoteHandler            *handlers.NoteHandler
  CreativeWritingHandler *handlers.CreativeWritingHandler
  ChatHandler            *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)

  api := protected.Group("/api")
  // Profile
  api.GET("/profile", cfg.UserHandler.GetProfile)
  api.PUT("/profile", cfg.UserHandler.UpdateProfile)
  // Notes
  api.GET("/notes", cfg.NoteHandler.List)
  api.POST("/notes", cfg.NoteHandler.Create)
  api.GET("/notes/:id", cfg.NoteHandler.Get)
  api.PUT("/notes/:id", cfg.NoteHandler.Update)
  api.DELETE("/notes/:id", cfg.NoteHandler.Delete)
  api.POST("/notes/:id/append", cfg.NoteHandler.Append)
  // Creative writings
  api.GET("/writings", cfg.CreativeWritingHandler.List)
  api.POST("/writings", cfg.CreativeWritingHandler.Create)
  api.GET("/writings/categories", cfg.CreativeWritingHandler.Categories)
  api.GET("/writings/:id", cfg.CreativeWritingHandler.Get)
  api.PUT("/writings/:id", cfg.CreativeWritingHandler.Update)
  api.DELETE("/writings/:id", cfg.CreativeWritingHandler.Delete)
  api.POST("/writings/:id/append", cfg.CreativeWritingHandler.Append)
  // Assistant
  api.POST("/chat", cfg.ChatHandler.Ask)
  api.POST("/insights", cfg.ChatHandler.Insights)
  api.POST("/chats", cfg.ChatHandler.CreateHistory)
  api.GET("/chats", cfg.ChatHandler.ListHistories)
  api.GET("/chats/:id", cfg.ChatHandler.GetHistory)
  api.DELETE("/chats/:id", cfg.ChatHandler.DeleteHistory)
  api.POST("/chats/:id/clear", cfg.ChatHandler.ClearHistory)

  return router
}
