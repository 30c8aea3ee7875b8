package routes

import (
	"time"

	"github.com/brainlink-app/brainlink-backend/internal/chat"
	"github.com/brainlink-app/brainlink-backend/internal/config"
	"github.com/brainlink-app/brainlink-backend/internal/handlers"
	"github.com/brainlink-app/brainlink-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	hub *chat.Hub,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	connectionHandler *handlers.ConnectionHandler,
	notificationHandler *handlers.NotificationHandler,
	messageHandler *handlers.MessageHandler,
	postHandler *handlers.PostHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	jwt := middleware.JWTProtected(cfg)

	// Profiles
	api.Get("/profiles/:username", jwt, profileHandler.View)
	api.Put("/profiles/me", jwt, profileHandler.Update)

	// Connections
	api.Post("/connections/requests/:username", jwt, connectionHandler.SendRequest)
	api.Post("/connections/requests/:id/accept", jwt, connectionHandler.Accept)
	api.Post("/connections/requests/:id/reject", jwt, connectionHandler.Reject)
	api.Get("/connections/requests", jwt, connectionHandler.ListRequests)
	api.Get("/connections", jwt, connectionHandler.List)
	api.Delete("/connections/:username", jwt, connectionHandler.Remove)

	// Notifications
	api.Get("/notifications", jwt, notificationHandler.List)
	api.Get("/notifications/unread-count", jwt, notificationHandler.UnreadCount)
	api.Post("/notifications/:id/read", jwt, notificationHandler.MarkRead)

	// Messaging
	api.Get("/messages/:username", jwt, messageHandler.Fetch)
	api.Post("/messages/:username/send", jwt, messageHandler.Send)
	api.Post("/messages/:id/read", jwt, messageHandler.MarkRead)
	api.Delete("/messages/:id", jwt, messageHandler.Delete)
	api.Get("/conversations", jwt, messageHandler.Conversations)

	// Chat push channel. Browsers cannot set headers on an upgrade request,
	// so the token rides the query string.
	app.Get("/ws/chat/:username",
		middleware.JWTProtectedQuery(cfg),
		middleware.StashUsername,
		chat.Upgrade,
		chat.Handler(hub),
	)

	// Posts
	api.Get("/posts", jwt, postHandler.List)
	api.Post("/posts", jwt, postHandler.Create)
	api.Get("/posts/:id", jwt, postHandler.Get)
	api.Post("/posts/:id/like", jwt, postHandler.Like)
	api.Delete("/posts/:id/like", jwt, postHandler.Unlike)
	api.Get("/posts/:id/comments", jwt, postHandler.ListComments)
	api.Post("/posts/:id/comments", jwt, postHandler.Comment)

	// Admin panel
	admin := api.Group("/admin", jwt, middleware.ElevatedRequired(db))
	admin.Get("/stats", adminHandler.Stats)

	// Uploaded chat attachments
	app.Static("/uploads", cfg.UploadDir)
}
