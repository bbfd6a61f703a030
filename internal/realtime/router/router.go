package router

import (
	"context"

	groupapp "github.com/Saieshwar5/sangam-sub001/internal/group/app"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/app"
	"github.com/Saieshwar5/sangam-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register messaging, membership and socket routes
func RegisterRoutes(
	r *fiber.App,
	wsHandler *app.RealtimeWebsocketHandler,
	messageHandler *app.MessageHandler,
	membershipHandler *groupapp.MembershipHandler,
) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHandler.HandleConnection(context.Background(), c)
	}))

	messages := r.Group("/messages")
	messages.Post("/", messageHandler.SendMessage)
	messages.Get("/room/:roomId", messageHandler.ListRoom)
	messages.Get("/between", messageHandler.ListBetween)
	messages.Put("/mark-read", messageHandler.MarkRead)
	messages.Put("/mark-sender-read/:userId", messageHandler.MarkSenderRead)
	messages.Get("/unread-count", messageHandler.UnreadCount)
	messages.Get("/unread-messages", messageHandler.UnreadSummary)
	messages.Delete("/:messageId", messageHandler.DeleteMessage)

	groups := r.Group("/groups")
	groups.Post("/:groupId/join-requests", membershipHandler.RequestJoin)
	groups.Get("/:groupId/join-requests", membershipHandler.ListPending)

	r.Put("/join-requests/:requestId/accept", membershipHandler.Accept)
}
