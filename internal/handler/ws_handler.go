package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"anonchat/internal/config"
	"anonchat/internal/coordinator"
	"anonchat/internal/domain"
	"anonchat/internal/hub"
	"anonchat/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub   *hub.Hub
	coord *coordinator.Coordinator
	wsCfg config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, coord *coordinator.Coordinator, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:   h,
		coord: coord,
		wsCfg: wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l := log.Ctx(r.Context())
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	h.hub.Register(client)
	go client.WritePump()

	h.coord.Connect(client.ID)

	go client.ReadPump(h.handleMessage, h.handleClose)
}

func (h *WSHandler) handleClose(client *hub.Client) {
	h.coord.Disconnect(client.ID)
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid message format"))
		return
	}

	switch base.Type {
	case domain.MsgTypeChatMessage:
		var msg domain.ChatMessageIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid chat_message"))
			return
		}
		h.coord.PublicMessage(client.ID, msg.Text)

	case domain.MsgTypePrivateRequest:
		var msg domain.PrivateRequestIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid private_chat_request"))
			return
		}
		h.coord.PrivateRequest(client.ID, msg.To)

	case domain.MsgTypePrivateAccept:
		var msg domain.PrivateAcceptIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid private_chat_accept"))
			return
		}
		h.coord.PrivateAccept(client.ID, msg.From)

	case domain.MsgTypePrivateMessage:
		var msg domain.PrivateMessageIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid private_message"))
			return
		}
		h.coord.PrivateMessage(client.ID, msg.To, msg.Message)

	case domain.MsgTypeLeavePrivate:
		h.coord.LeavePrivate(client.ID)

	case domain.MsgTypeCreateRoom:
		var msg domain.CreateRoomIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid create_room"))
			return
		}
		h.coord.CreateRoom(client.ID, msg.Name)

	case domain.MsgTypeRequestJoinRoom:
		var msg domain.RequestJoinRoomIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid request_join_room"))
			return
		}
		h.coord.RequestJoinRoom(client.ID, msg.RoomID)

	case domain.MsgTypeAcceptRoomJoin:
		var msg domain.AcceptRoomJoinIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid accept_room_join"))
			return
		}
		h.coord.AcceptRoomJoin(client.ID, msg.RoomID, msg.UserID)

	case domain.MsgTypeRoomMessage:
		var msg domain.RoomMessageIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid room_message"))
			return
		}
		h.coord.RoomMessage(client.ID, msg.RoomID, msg.Message)

	case domain.MsgTypeLeaveRoom:
		var msg domain.LeaveRoomIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid leave_room"))
			return
		}
		h.coord.LeaveRoom(client.ID, msg.RoomID)

	case domain.MsgTypeTyping:
		var msg domain.TypingIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Invalid typing"))
			return
		}
		h.coord.Typing(client.ID, msg.IsTyping)

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "Unknown message type"))
	}
}

func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
