package coordinator

import (
	"sync"
	"time"

	"anonchat/internal/domain"
	"anonchat/pkg/log"
)

const welcomeText = "Welcome to Anonymous Messenger!"

// Coordinator is the session/presence/room core. It owns every mutable
// registry (sessions, pairings, rooms) and serializes all state transitions
// behind one mutex, so each inbound event runs to completion before the next
// one is observed. The transport feeds it events and it pushes frames back
// out through the Sender.
type Coordinator struct {
	mu     sync.Mutex
	sender Sender
	issuer *Issuer

	sessions  map[string]*domain.Session // connID -> session
	order     []string                   // registration order, drives roster order
	pairs     map[string]string          // connID -> partner connID, always symmetric
	rooms     map[string]*domain.Room    // roomID -> room
	roomOrder []string                   // creation order, drives room list order
	roomSeq   int
	lastMsgID int64

	autoClear *AutoClear
}

func New(sender Sender, issuer *Issuer, autoClearInterval time.Duration) *Coordinator {
	c := &Coordinator{
		sender:   sender,
		issuer:   issuer,
		sessions: make(map[string]*domain.Session),
		pairs:    make(map[string]string),
		rooms:    make(map[string]*domain.Room),
	}
	c.autoClear = NewAutoClear(autoClearInterval, c.clearAll)
	return c
}

// Connect registers a new session and announces it. Registering an already
// registered connection id is a no-op.
func (c *Coordinator) Connect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[connID]; ok {
		return
	}

	s := domain.NewSession(connID, c.issuer.Issue())
	c.sessions[connID] = s
	c.order = append(c.order, connID)

	l := log.L()
	l.Info().Str(log.FieldConnID, connID).Int(log.FieldAnonID, s.AnonymousID).Msg("user connected")

	c.broadcastAll(&domain.UserCountMessage{Type: domain.MsgTypeUserCount, Count: len(c.sessions)})

	c.sender.SendTo(connID, &domain.WelcomeMessage{
		Type:        domain.MsgTypeWelcome,
		AnonymousID: s.AnonymousID,
		Message:     welcomeText,
	})

	c.broadcastAll(c.userListMessage())
	c.sender.SendTo(connID, c.roomListMessage())

	c.broadcastExcept(connID, &domain.PresenceNotice{
		Type:      domain.MsgTypeUserJoined,
		Message:   "A new user joined the chat",
		UserCount: len(c.sessions),
	})
}

// Disconnect is the single multi-component teardown: pairing first, then room
// membership, then presence, then the post-departure broadcasts. It is
// idempotent; a second call for the same connection id does nothing.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[connID]
	if !ok {
		return
	}

	l := log.L()
	l.Info().Str(log.FieldConnID, connID).Int(log.FieldAnonID, s.AnonymousID).Msg("user disconnected")

	// Pairing teardown: the surviving partner is told, both legs cleared.
	if partner, paired := c.pairs[connID]; paired {
		c.dropPair(connID, partner)
		c.sender.SendTo(partner, &domain.BaseMessage{Type: domain.MsgTypePartnerLeftPrivate})
	}

	// Room teardown: same removal/closure logic as an explicit leave, for
	// every room the connection belonged to.
	for _, roomID := range append([]string(nil), c.roomOrder...) {
		room, ok := c.rooms[roomID]
		if !ok || !room.HasMember(connID) {
			continue
		}
		c.removeFromRoom(room, s)
	}

	// Presence removal.
	delete(c.sessions, connID)
	for i, id := range c.order {
		if id == connID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	// Presence change always clears everyone's transcript.
	c.broadcastAll(&domain.BaseMessage{Type: domain.MsgTypeClearMessages})

	c.broadcastAll(&domain.PresenceNotice{
		Type:      domain.MsgTypeUserLeft,
		Message:   "A user left the chat",
		UserCount: len(c.sessions),
	})
	c.broadcastAll(&domain.UserCountMessage{Type: domain.MsgTypeUserCount, Count: len(c.sessions)})
	c.broadcastAll(c.userListMessage())
	c.broadcastAll(c.roomListMessage())

	if len(c.sessions) == 0 {
		c.autoClear.Disarm()
	}
}

// Count reports the number of registered sessions.
func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// clearAll is the auto-clear tick. It competes for the coordinator lock like
// any connection event, so it never interleaves with one.
func (c *Coordinator) clearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcastAll(&domain.BaseMessage{Type: domain.MsgTypeClearMessages})
}

func (c *Coordinator) broadcastAll(message interface{}) {
	for _, id := range c.order {
		c.sender.SendTo(id, message)
	}
}

func (c *Coordinator) broadcastExcept(except string, message interface{}) {
	for _, id := range c.order {
		if id == except {
			continue
		}
		c.sender.SendTo(id, message)
	}
}

func (c *Coordinator) userListMessage() *domain.UserListMessage {
	users := make([]domain.UserEntry, 0, len(c.order))
	for _, id := range c.order {
		s := c.sessions[id]
		_, inPrivate := c.pairs[id]
		users = append(users, domain.UserEntry{
			ConnID:        s.ConnID,
			AnonymousID:   s.AnonymousID,
			InPrivateChat: inPrivate,
		})
	}
	return &domain.UserListMessage{Type: domain.MsgTypeUserList, Users: users}
}

func (c *Coordinator) roomListMessage() *domain.RoomListMessage {
	rooms := make([]domain.RoomEntry, 0, len(c.roomOrder))
	for _, id := range c.roomOrder {
		room := c.rooms[id]
		rooms = append(rooms, domain.RoomEntry{
			RoomID:      room.ID,
			Name:        room.Name,
			Creator:     room.CreatorAnonID,
			MemberCount: room.MemberCount(),
		})
	}
	return &domain.RoomListMessage{Type: domain.MsgTypeRoomList, Rooms: rooms}
}

// stamp mints a strictly increasing message id and a display timestamp.
// Wall-clock ids are bumped by one on same-millisecond arrivals.
func (c *Coordinator) stamp() (int64, string) {
	now := time.Now()
	id := now.UnixMilli()
	if id <= c.lastMsgID {
		id = c.lastMsgID + 1
	}
	c.lastMsgID = id
	return id, now.Format("3:04:05 PM")
}
