package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Saieshwar5/sangam-sub001/internal/realtime/domain"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/repository"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"
	"github.com/Saieshwar5/sangam-sub001/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	pingPeriod = 10 * time.Minute
	writeWait  = 10 * time.Second
	sessionTTL = 30 * time.Minute
)

// GroupDirectory where the handshake learns which group channels a
// user belongs to
type GroupDirectory interface {
	GroupIDsOf(ctx context.Context, userID string) ([]string, error)
}

// RealtimeWebsocketHandler entry point for authenticated socket
// connections
type RealtimeWebsocketHandler struct {
	registry    *Registry
	deliveryUC  *DeliveryUseCase
	messageUC   *MessageUseCase
	sessionRepo repository.SessionRepository
	groups      GroupDirectory
}

// NewRealtimeWebsocketHandler create RealtimeWebsocketHandler
func NewRealtimeWebsocketHandler(
	registry *Registry,
	deliveryUC *DeliveryUseCase,
	messageUC *MessageUseCase,
	sessionRepo repository.SessionRepository,
	groups GroupDirectory,
) *RealtimeWebsocketHandler {
	return &RealtimeWebsocketHandler{
		registry:    registry,
		deliveryUC:  deliveryUC,
		messageUC:   messageUC,
		sessionRepo: sessionRepo,
		groups:      groups,
	}
}

// HandleConnection run one socket from handshake to disconnect
func (h *RealtimeWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(string)
	if !ok || userID == "" {
		// middleware already rejected bad tokens, this only guards a
		// missing Locals wiring
		conn.Close()
		return
	}

	if h.sessionRepo != nil && !h.sessionRepo.IsAlive(ctx, userID) {
		logger.Log.Warn("websocket refused, session not alive", zap.String("userID", userID))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session expired"))
		conn.Close()
		return
	}

	client := NewConn(uuid.New().String(), userID)
	h.registry.Register(client)
	logger.Log.Info("websocket connected",
		zap.String("userID", userID), zap.String("connID", client.Info.ID))

	// join the user's group channels for the lifetime of this socket
	if h.groups != nil {
		groupIDs, err := h.groups.GroupIDsOf(ctx, userID)
		if err != nil {
			logger.Log.Warn("group channel subscribe failed",
				zap.String("userID", userID), zap.Error(err))
		}
		for _, groupID := range groupIDs {
			h.registry.Subscribe(client.Info.ID, groupID)
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.registry.Unregister(client.Info.ID)
		logger.Log.Info("websocket close", zap.String("userID", userID))
		conn.Close()
	}()

	// fiber handles close frames itself, hook it to log only
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		if h.sessionRepo != nil {
			if err := h.sessionRepo.Touch(context.Background(), userID, sessionTTL); err != nil {
				logger.Log.Debug("session touch failed", zap.Error(err))
			}
		}
		return nil
	})

	// write pump: events queued by the router plus periodic pings
	go func() {
		for {
			select {
			case data, ok := <-client.Outbound():
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					logger.Log.Errorf("write event error:", err)
					client.Close()
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					client.Close()
					return
				}
			case <-client.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			h.sendError(client, "unknown message type")
			continue
		}
		h.textMessageAction(ctx, client, message)
	}
}

func (h *RealtimeWebsocketHandler) textMessageAction(ctx context.Context, client *Conn, msg []byte) {
	userID := client.Info.UserID

	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(client, "malformed request")
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch domain.Action(req.Action) {

	case domain.SendMessage:
		m, err := h.deliveryUC.Deliver(ctx, userID, req.ReceiverID, req.Content, client.Info.ID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message_id"] = m.ID
			resp.Payload["room_id"] = m.RoomID
		}

	case domain.ReadMessage:
		n, err := h.messageUC.MarkRead(ctx, req.MessageIDs, userID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["marked"] = n
		}

	case domain.ReadSender:
		n, err := h.messageUC.MarkSenderRead(ctx, userID, req.SenderID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["marked"] = n
		}

	case domain.GetUnread:
		summary, err := h.messageUC.UnreadSummary(ctx, userID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			for _, unread := range summary {
				resp.Payload[unread.SenderID] = unread.UnreadCount
			}
		}

	default:
		h.sendError(client, "unknown action")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err",
			zap.String("UserID", userID),
			zap.String("Action", req.Action),
			zap.String("err", resp.Error))
	}
	h.sendResponse(client, resp)
}

// sendResponse queue a JSON reply for a client action. Replies share
// the outbound queue with pushed events so the write pump stays the
// only writer on the socket.
func (h *RealtimeWebsocketHandler) sendResponse(client *Conn, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	client.Enqueue(b)
}

func (h *RealtimeWebsocketHandler) sendError(client *Conn, errorMsg string) {
	h.sendResponse(client, domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{"error": errorMsg},
	})
}
