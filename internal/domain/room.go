package domain

import "time"

// Room is a named, creator-owned group channel. The room exists while its
// creator is a member and membership is non-empty; once closed its id is
// never reused.
type Room struct {
	ID            string
	Name          string
	Creator       string // creator's connection id
	CreatorAnonID int
	members       map[string]struct{}
	CreatedAt     time.Time
}

func NewRoom(id, name, creator string, creatorAnonID int) *Room {
	return &Room{
		ID:            id,
		Name:          name,
		Creator:       creator,
		CreatorAnonID: creatorAnonID,
		members:       map[string]struct{}{creator: {}},
		CreatedAt:     time.Now(),
	}
}

// AddMember is idempotent.
func (r *Room) AddMember(connID string) {
	r.members[connID] = struct{}{}
}

func (r *Room) RemoveMember(connID string) {
	delete(r.members, connID)
}

func (r *Room) HasMember(connID string) bool {
	_, ok := r.members[connID]
	return ok
}

func (r *Room) MemberCount() int {
	return len(r.members)
}

// MemberIDs returns the current membership. Order is unspecified.
func (r *Room) MemberIDs() []string {
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	return ids
}
