package coordinator

import (
	"fmt"

	"anonchat/internal/audit"
	"anonchat/internal/domain"
	"anonchat/pkg/log"
)

// CreateRoom mints a fresh room with the creator as sole member. Room ids are
// monotonic and never reused after a close.
func (c *Coordinator) CreateRoom(creator, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[creator]
	if !ok {
		return
	}

	c.roomSeq++
	roomID := fmt.Sprintf("room_%d", c.roomSeq)
	room := domain.NewRoom(roomID, name, creator, s.AnonymousID)
	c.rooms[roomID] = room
	c.roomOrder = append(c.roomOrder, roomID)

	l := log.L()
	l.Info().Str(log.FieldRoomID, roomID).Str(log.FieldRoomName, name).Int(log.FieldAnonID, s.AnonymousID).Msg("room created")
	audit.LogWithDetail(audit.ActionCreateRoom, creator, name, "room created")

	c.sender.SendTo(creator, &domain.RoomCreatedMessage{
		Type:   domain.MsgTypeRoomCreated,
		RoomID: roomID,
		Name:   name,
	})
	c.broadcastAll(c.roomListMessage())
}

// RequestJoinRoom forwards a join request to the room creator only. A missing
// room yields a targeted not-found notice to the requester and nothing else.
func (c *Coordinator) RequestJoinRoom(requester, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[requester]
	if !ok {
		return
	}
	room, ok := c.rooms[roomID]
	if !ok {
		c.sender.SendTo(requester, domain.NewErrorMessage(domain.ErrCodeRoomNotFound, "Room not found"))
		return
	}

	c.sender.SendTo(room.Creator, &domain.RoomJoinRequestOut{
		Type:            domain.MsgTypeRoomJoinRequest,
		RoomID:          roomID,
		RoomName:        room.Name,
		From:            requester,
		FromAnonymousID: s.AnonymousID,
	})
	c.sender.SendTo(requester, &domain.JoinRequestSentMessage{
		Type:     domain.MsgTypeJoinRequestSent,
		RoomName: room.Name,
	})
}

// AcceptRoomJoin adds the joiner to the room. Stale rooms or joiners that
// disconnected in the meantime are dropped silently.
func (c *Coordinator) AcceptRoomJoin(accepter, roomID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms[roomID]
	if !ok {
		return
	}
	joiner, ok := c.sessions[userID]
	if !ok {
		l := log.L()
		l.Debug().Str(log.FieldConnID, accepter).Str(log.FieldRoomID, roomID).Msg("room join accept for stale joiner dropped")
		return
	}

	room.AddMember(userID)

	c.sender.SendTo(userID, &domain.RoomJoinedMessage{
		Type:   domain.MsgTypeRoomJoined,
		RoomID: roomID,
		Name:   room.Name,
	})
	c.systemRoomMessage(room, fmt.Sprintf("%s joined the room", joiner.Label()))
	c.broadcastAll(c.roomListMessage())
}

// LeaveRoom removes the caller from the room, closing it when the creator
// leaves or membership empties. Leaving an unknown or already-left room is a
// no-op apart from the ack.
func (c *Coordinator) LeaveRoom(connID, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[connID]
	if !ok {
		return
	}
	room, ok := c.rooms[roomID]
	if !ok {
		return
	}
	if room.HasMember(connID) {
		c.removeFromRoom(room, s)
	}

	c.sender.SendTo(connID, &domain.BaseMessage{Type: domain.MsgTypeLeftRoom})
	c.broadcastAll(c.roomListMessage())
}

// removeFromRoom applies the shared removal/closure logic: departure notice
// to the remaining members, then close when the creator left or the room
// emptied.
func (c *Coordinator) removeFromRoom(room *domain.Room, s *domain.Session) {
	wasCreator := room.Creator == s.ConnID
	room.RemoveMember(s.ConnID)

	if room.MemberCount() > 0 {
		c.systemRoomMessage(room, fmt.Sprintf("%s left the room", s.Label()))
	}
	if wasCreator || room.MemberCount() == 0 {
		c.closeRoom(room)
	}
}

// closeRoom notifies the remaining members before the room is discarded.
func (c *Coordinator) closeRoom(room *domain.Room) {
	for _, id := range room.MemberIDs() {
		c.sender.SendTo(id, &domain.RoomClosedMessage{
			Type:   domain.MsgTypeRoomClosed,
			RoomID: room.ID,
		})
	}

	delete(c.rooms, room.ID)
	for i, id := range c.roomOrder {
		if id == room.ID {
			c.roomOrder = append(c.roomOrder[:i], c.roomOrder[i+1:]...)
			break
		}
	}

	l := log.L()
	l.Info().Str(log.FieldRoomID, room.ID).Str(log.FieldRoomName, room.Name).Msg("room closed")
	audit.LogWithDetail(audit.ActionCloseRoom, room.Creator, room.Name, "room closed")
}

func (c *Coordinator) systemRoomMessage(room *domain.Room, text string) {
	id, ts := c.stamp()
	msg := &domain.ChatMessageOut{
		Type:      domain.MsgTypeRoomMessage,
		ID:        id,
		Text:      text,
		Sender:    domain.SystemSender,
		Timestamp: ts,
		RoomID:    room.ID,
		IsSystem:  true,
	}
	for _, memberID := range room.MemberIDs() {
		c.sender.SendTo(memberID, msg)
	}
}
