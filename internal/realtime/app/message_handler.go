package app

import (
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"
	"github.com/Saieshwar5/sangam-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MessageHandler REST surface of the messaging core. Success answers
// reflect durability only; live delivery happened or not behind it.
type MessageHandler struct {
	deliveryUC *DeliveryUseCase
	messageUC  *MessageUseCase
}

// NewMessageHandler create MessageHandler
func NewMessageHandler(deliveryUC *DeliveryUseCase, messageUC *MessageUseCase) *MessageHandler {
	return &MessageHandler{deliveryUC: deliveryUC, messageUC: messageUC}
}

type sendMessageReq struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type markReadReq struct {
	MessageIDs []string `json:"message_ids"`
}

func authedUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	return userID
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}

// SendMessage POST /messages
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID := authedUser(c)

	var req sendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errprocess.Validation("malformed body"))
	}
	if req.SenderID != "" && req.SenderID != userID {
		return fail(c, errprocess.Forbidden("cannot send as another user"))
	}

	msg, err := h.deliveryUC.Deliver(c.Context(), userID, req.ReceiverID, req.Content, "")
	if err != nil {
		logger.Log.Error("send message failed",
			zap.String("sender", userID), zap.String("err", err.Error()))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ListRoom GET /messages/room/:roomId
func (h *MessageHandler) ListRoom(c *fiber.Ctx) error {
	page, err := h.messageUC.ListRoom(
		c.Context(),
		c.Params("roomId"),
		authedUser(c),
		c.Query("cursor"),
		int64(c.QueryInt("limit")),
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// ListBetween GET /messages/between?userA=..&userB=..
func (h *MessageHandler) ListBetween(c *fiber.Ctx) error {
	page, err := h.messageUC.ListBetween(
		c.Context(),
		c.Query("userA"),
		c.Query("userB"),
		authedUser(c),
		c.Query("cursor"),
		int64(c.QueryInt("limit")),
	)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// MarkRead PUT /messages/mark-read
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var req markReadReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errprocess.Validation("malformed body"))
	}

	marked, err := h.messageUC.MarkRead(c.Context(), req.MessageIDs, authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"marked": marked})
}

// MarkSenderRead PUT /messages/mark-sender-read/:userId
func (h *MessageHandler) MarkSenderRead(c *fiber.Ctx) error {
	marked, err := h.messageUC.MarkSenderRead(c.Context(), authedUser(c), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"marked": marked})
}

// UnreadCount GET /messages/unread-count
func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.messageUC.UnreadCount(c.Context(), authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// UnreadSummary GET /messages/unread-messages
func (h *MessageHandler) UnreadSummary(c *fiber.Ctx) error {
	summary, err := h.messageUC.UnreadSummary(c.Context(), authedUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"unread": summary})
}

// DeleteMessage DELETE /messages/:messageId
func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	if err := h.messageUC.Delete(c.Context(), c.Params("messageId"), authedUser(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
