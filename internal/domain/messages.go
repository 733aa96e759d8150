package domain

// WebSocket message types from client.
const (
	MsgTypeChatMessage     = "chat_message"
	MsgTypePrivateRequest  = "private_chat_request"
	MsgTypePrivateAccept   = "private_chat_accept"
	MsgTypePrivateMessage  = "private_message"
	MsgTypeLeavePrivate    = "leave_private_chat"
	MsgTypeCreateRoom      = "create_room"
	MsgTypeRequestJoinRoom = "request_join_room"
	MsgTypeAcceptRoomJoin  = "accept_room_join"
	MsgTypeRoomMessage     = "room_message"
	MsgTypeLeaveRoom       = "leave_room"
	MsgTypeTyping          = "typing"
)

// WebSocket message types to client.
const (
	MsgTypeWelcome            = "welcome"
	MsgTypeUserCount          = "user_count"
	MsgTypeUserList           = "user_list"
	MsgTypeUserJoined         = "user_joined"
	MsgTypeUserLeft           = "user_left"
	MsgTypeRoomList           = "room_list"
	MsgTypePrivateStarted     = "private_chat_started"
	MsgTypeLeftPrivate        = "left_private_chat"
	MsgTypePartnerLeftPrivate = "partner_left_private_chat"
	MsgTypeRoomCreated        = "room_created"
	MsgTypeRoomJoinRequest    = "room_join_request"
	MsgTypeJoinRequestSent    = "join_request_sent"
	MsgTypeRoomJoined         = "room_joined"
	MsgTypeLeftRoom           = "left_room"
	MsgTypeRoomClosed         = "room_closed"
	MsgTypeClearMessages      = "clear_messages"
	MsgTypeError              = "error"
)

// Error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeRoomNotFound = "ROOM_NOT_FOUND"
)

// SystemSender is the sender label on room system notices.
const SystemSender = "System"

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type ChatMessageIn struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type PrivateRequestIn struct {
	Type string `json:"type"`
	To   string `json:"to"`
}

type PrivateAcceptIn struct {
	Type            string `json:"type"`
	From            string `json:"from"`
	FromAnonymousID int    `json:"from_anonymous_id"`
}

type PrivateMessageIn struct {
	Type    string `json:"type"`
	To      string `json:"to"`
	Message string `json:"message"`
}

type LeavePrivateIn struct {
	Type    string `json:"type"`
	Partner string `json:"partner"`
}

type CreateRoomIn struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type RequestJoinRoomIn struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type AcceptRoomJoinIn struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

type RoomMessageIn struct {
	Type    string `json:"type"`
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

type LeaveRoomIn struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type TypingIn struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"is_typing"`
}

// Server -> Client messages

type WelcomeMessage struct {
	Type        string `json:"type"`
	AnonymousID int    `json:"anonymous_id"`
	Message     string `json:"message"`
}

type UserCountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// UserEntry is one row of the presence roster.
type UserEntry struct {
	ConnID        string `json:"conn_id"`
	AnonymousID   int    `json:"anonymous_id"`
	InPrivateChat bool   `json:"in_private_chat"`
}

type UserListMessage struct {
	Type  string      `json:"type"`
	Users []UserEntry `json:"users"`
}

type PresenceNotice struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	UserCount int    `json:"user_count"`
}

// RoomEntry is one row of the room list. Creator is the creator's anonymous
// display id, not their connection id.
type RoomEntry struct {
	RoomID      string `json:"room_id"`
	Name        string `json:"name"`
	Creator     int    `json:"creator"`
	MemberCount int    `json:"member_count"`
}

type RoomListMessage struct {
	Type  string      `json:"type"`
	Rooms []RoomEntry `json:"rooms"`
}

// ChatMessageOut is a stamped message on any audience. Exactly one of
// IsPublic/IsPrivate/IsRoom is set; IsSystem marks room system notices.
type ChatMessageOut struct {
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
	RoomID    string `json:"room_id,omitempty"`
	IsPublic  bool   `json:"is_public,omitempty"`
	IsPrivate bool   `json:"is_private,omitempty"`
	IsRoom    bool   `json:"is_room,omitempty"`
	IsSystem  bool   `json:"is_system,omitempty"`
}

type PrivateRequestOut struct {
	Type            string `json:"type"`
	From            string `json:"from"`
	FromAnonymousID int    `json:"from_anonymous_id"`
}

type PrivateStartedMessage struct {
	Type            string `json:"type"`
	With            string `json:"with"`
	WithAnonymousID int    `json:"with_anonymous_id"`
}

type RoomCreatedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type RoomJoinRequestOut struct {
	Type            string `json:"type"`
	RoomID          string `json:"room_id"`
	RoomName        string `json:"room_name"`
	From            string `json:"from"`
	FromAnonymousID int    `json:"from_anonymous_id"`
}

type JoinRequestSentMessage struct {
	Type     string `json:"type"`
	RoomName string `json:"room_name"`
}

type RoomJoinedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type RoomClosedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type TypingOut struct {
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	IsTyping bool   `json:"is_typing"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Code:    code,
		Message: message,
	}
}
