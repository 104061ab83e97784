// Package router wires HTTP routes to their handlers. Public routes carry
// no middleware; everything else sits behind the session check and the
// rate limiter.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/handler"
	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/session"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Timetable *handler.TimetableHandler
	Friend    *handler.FriendHandler
	QR        *handler.QRHandler
	Message   *handler.MessageHandler
	Profile   *handler.ProfileHandler
}

// Register sets up all routes on the Echo instance. The rate limiter is
// optional; pass nil to skip it.
func Register(e *echo.Echo, h Handlers, store session.Store, rateLimit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	if rateLimit != nil {
		api.Use(rateLimit)
	}

	// Account endpoints that work without a session.
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	auth := api.Group("", middleware.SessionAuth(store))

	auth.GET("/me", h.Auth.Me)

	auth.GET("/timetable", h.Timetable.List)
	auth.POST("/timetable", h.Timetable.Upsert)
	auth.DELETE("/timetable/:id", h.Timetable.Delete)
	auth.GET("/timetable/user/:id", h.Timetable.ListForUser)

	auth.GET("/friends", h.Friend.ListFriends)
	auth.GET("/friend-requests", h.Friend.ListRequests)
	auth.GET("/users/search", h.Friend.Search)
	auth.POST("/friend-request", h.Friend.SendRequest)
	auth.POST("/friend-request/:id/accept", h.Friend.Accept)
	auth.POST("/friend-request/:id/reject", h.Friend.Reject)

	auth.GET("/qr/generate", h.QR.Generate)
	auth.POST("/qr/add-friend/:id", h.QR.AddFriend)
	auth.POST("/qr/parse", h.QR.Parse)

	auth.GET("/conversations", h.Message.ListConversations)
	auth.GET("/conversations/:id", h.Message.OpenConversation)
	auth.GET("/conversations/:id/messages", h.Message.ListMessages)
	auth.POST("/conversations/:id/messages", h.Message.SendMessage)
	auth.GET("/unread-count", h.Message.UnreadCount)

	auth.GET("/profile", h.Profile.GetMine)
	auth.PUT("/profile", h.Profile.UpdateMine)
	auth.GET("/profile/:id", h.Profile.GetByUser)
	auth.POST("/profile/avatar", h.Profile.UploadAvatar)
}
