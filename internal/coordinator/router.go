package coordinator

import (
	"anonchat/internal/domain"
	"anonchat/pkg/log"
)

// PublicMessage stamps and fans a message out to every session that is not
// currently in a private chat; paired participants see only their private
// thread. The first public message of the process arms the auto-clear timer.
func (c *Coordinator) PublicMessage(sender, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sender]
	if !ok {
		return
	}

	id, ts := c.stamp()
	msg := &domain.ChatMessageOut{
		Type:      domain.MsgTypeChatMessage,
		ID:        id,
		Text:      text,
		Sender:    s.Label(),
		Timestamp: ts,
		IsPublic:  true,
	}

	for _, connID := range c.order {
		if _, paired := c.pairs[connID]; paired {
			continue
		}
		c.sender.SendTo(connID, msg)
	}

	c.autoClear.Arm()
}

// PrivateMessage delivers to the sender's current partner and echoes back to
// the sender. The pairing registry is authoritative: an unpaired sender or a
// stale target hint drops the message.
func (c *Coordinator) PrivateMessage(sender, to, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sender]
	if !ok {
		return
	}
	partner, paired := c.pairs[sender]
	if !paired || (to != "" && to != partner) {
		l := log.L()
		l.Debug().Str(log.FieldConnID, sender).Str(log.FieldPartner, to).Msg("private message without matching link dropped")
		return
	}

	id, ts := c.stamp()
	msg := &domain.ChatMessageOut{
		Type:      domain.MsgTypePrivateMessage,
		ID:        id,
		Text:      text,
		Sender:    s.Label(),
		Timestamp: ts,
		IsPrivate: true,
	}

	c.sender.SendTo(partner, msg)
	c.sender.SendTo(sender, msg)
}

// RoomMessage delivers to all current members, sender included. A sender that
// is not a member (a benign race with leave/close) is dropped silently.
func (c *Coordinator) RoomMessage(sender, roomID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sender]
	if !ok {
		return
	}
	room, ok := c.rooms[roomID]
	if !ok || !room.HasMember(sender) {
		l := log.L()
		l.Debug().Str(log.FieldConnID, sender).Str(log.FieldRoomID, roomID).Msg("room message from non-member dropped")
		return
	}

	id, ts := c.stamp()
	msg := &domain.ChatMessageOut{
		Type:      domain.MsgTypeRoomMessage,
		ID:        id,
		Text:      text,
		Sender:    s.Label(),
		Timestamp: ts,
		RoomID:    roomID,
		IsRoom:    true,
	}

	for _, memberID := range room.MemberIDs() {
		c.sender.SendTo(memberID, msg)
	}
}

// Typing relays a typing indicator to everyone but the sender.
func (c *Coordinator) Typing(sender string, isTyping bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sender]
	if !ok {
		return
	}

	c.broadcastExcept(sender, &domain.TypingOut{
		Type:     domain.MsgTypeTyping,
		Sender:   s.Label(),
		IsTyping: isTyping,
	})
}
