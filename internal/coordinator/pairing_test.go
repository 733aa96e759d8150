package coordinator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"anonchat/internal/domain"
)

func requireSymmetric(t *testing.T, c *Coordinator) {
	t.Helper()
	for a, b := range c.pairs {
		require.Equal(t, a, c.pairs[b], "pairing must be symmetric: %s <-> %s", a, b)
	}
}

func TestPrivateRequest_ForwardedToTargetOnly(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	c.Connect("c2")
	c.Connect("c3")
	anonID := rec.welcome("c1").AnonymousID
	rec.reset()

	c.PrivateRequest("c1", "c2")

	var got *domain.PrivateRequestOut
	for _, m := range rec.all("c2") {
		if r, ok := m.(*domain.PrivateRequestOut); ok {
			got = r
		}
	}
	req.NotNil(got)
	req.Equal("c1", got.From)
	req.Equal(anonID, got.FromAnonymousID)
	req.Empty(rec.all("c3"))

	// No server-side state is kept for a pending request.
	req.Empty(c.pairs)
}

func TestPrivateRequest_StaleTargetDropped(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	rec.reset()

	c.PrivateRequest("c1", "ghost")

	req.Empty(rec.all("ghost"))
	req.Empty(rec.all("c1"))
}

func TestPrivateAccept_LinksBothAndNotifies(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	c.Connect("c2")
	anon1 := rec.welcome("c1").AnonymousID
	anon2 := rec.welcome("c2").AnonymousID
	rec.reset()

	// c1 requested, c2 accepts.
	c.PrivateAccept("c2", "c1")

	req.Equal("c1", c.pairs["c2"])
	req.Equal("c2", c.pairs["c1"])
	requireSymmetric(t, c)

	var started2 *domain.PrivateStartedMessage
	for _, m := range rec.all("c2") {
		if s, ok := m.(*domain.PrivateStartedMessage); ok {
			started2 = s
		}
	}
	req.NotNil(started2)
	req.Equal("c1", started2.With)
	req.Equal(anon1, started2.WithAnonymousID)

	var started1 *domain.PrivateStartedMessage
	for _, m := range rec.all("c1") {
		if s, ok := m.(*domain.PrivateStartedMessage); ok {
			started1 = s
		}
	}
	req.NotNil(started1)
	req.Equal("c2", started1.With)
	req.Equal(anon2, started1.WithAnonymousID)

	// Roster re-broadcast marks both as in a private chat.
	list := rec.lastUserList("c1")
	req.NotNil(list)
	for _, u := range list.Users {
		req.True(u.InPrivateChat)
	}
}

func TestPrivateAccept_WhileAlreadyPaired_AutoLeavesOldLink(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	c.Connect("c2")
	c.Connect("c3")
	c.PrivateAccept("c1", "c2")
	rec.reset()

	// c1 accepts a new pairing with c3 while linked to c2.
	c.PrivateAccept("c1", "c3")

	req.Equal("c3", c.pairs["c1"])
	req.Equal("c1", c.pairs["c3"])
	_, stillPaired := c.pairs["c2"]
	req.False(stillPaired)
	requireSymmetric(t, c)

	// The abandoned partner is told its link ended.
	req.Equal(1, rec.countType("c2", domain.MsgTypePartnerLeftPrivate))
}

func TestLeavePrivate_TearsDownBothLegs(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	c.Connect("c2")
	c.PrivateAccept("c2", "c1")
	rec.reset()

	c.LeavePrivate("c1")

	req.Empty(c.pairs)
	req.Equal(1, rec.countType("c1", domain.MsgTypeLeftPrivate))
	req.Equal(1, rec.countType("c2", domain.MsgTypePartnerLeftPrivate))

	list := rec.lastUserList("c2")
	req.NotNil(list)
	for _, u := range list.Users {
		req.False(u.InPrivateChat)
	}
}

func TestLeavePrivate_Unpaired_IsNoOp(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	rec.reset()

	c.LeavePrivate("c1")
	c.LeavePrivate("c1")

	req.Empty(c.pairs)
	req.Equal(0, rec.countType("c1", domain.MsgTypeLeftPrivate))
}

func TestDisconnect_WhilePaired_NotifiesPartner(t *testing.T) {
	req := require.New(t)
	c, rec := newTestCoordinator()

	c.Connect("c1")
	c.Connect("c2")
	c.PrivateAccept("c2", "c1")
	rec.reset()

	c.Disconnect("c1")

	req.Empty(c.pairs)
	req.Equal(1, rec.countType("c2", domain.MsgTypePartnerLeftPrivate))
	requireSymmetric(t, c)
}
