package coordinator

import (
	"anonchat/internal/audit"
	"anonchat/internal/domain"
	"anonchat/pkg/log"
)

// PrivateRequest forwards a pairing request to the target. The server keeps
// no record of pending requests; if the target disconnects before answering,
// the request is simply lost.
func (c *Coordinator) PrivateRequest(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[from]
	if !ok {
		return
	}
	if _, ok := c.sessions[to]; !ok {
		l := log.L()
		l.Debug().Str(log.FieldConnID, from).Str(log.FieldPartner, to).Msg("private chat request to stale target dropped")
		return
	}

	c.sender.SendTo(to, &domain.PrivateRequestOut{
		Type:            domain.MsgTypePrivateRequest,
		From:            from,
		FromAnonymousID: s.AnonymousID,
	})
}

// PrivateAccept links accepter and requester. If either side already holds a
// link, that link is torn down first and the abandoned partner notified, so
// pairing stays symmetric at every observable instant.
func (c *Coordinator) PrivateAccept(accepter, requester string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.sessions[accepter]
	if !ok {
		return
	}
	req, ok := c.sessions[requester]
	if !ok || accepter == requester {
		return
	}

	for _, connID := range []string{accepter, requester} {
		partner, paired := c.pairs[connID]
		if !paired {
			continue
		}
		c.dropPair(connID, partner)
		if partner != accepter && partner != requester {
			c.sender.SendTo(partner, &domain.BaseMessage{Type: domain.MsgTypePartnerLeftPrivate})
		}
	}

	c.pairs[accepter] = requester
	c.pairs[requester] = accepter

	c.sender.SendTo(accepter, &domain.PrivateStartedMessage{
		Type:            domain.MsgTypePrivateStarted,
		With:            requester,
		WithAnonymousID: req.AnonymousID,
	})
	c.sender.SendTo(requester, &domain.PrivateStartedMessage{
		Type:            domain.MsgTypePrivateStarted,
		With:            accepter,
		WithAnonymousID: acc.AnonymousID,
	})

	audit.LogWithDetail(audit.ActionPairStart, accepter, requester, "private chat started")

	// inPrivateChat changed for both; everyone gets a fresh roster.
	c.broadcastAll(c.userListMessage())
}

// LeavePrivate tears down the caller's link. No-op when unpaired.
func (c *Coordinator) LeavePrivate(initiator string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[initiator]; !ok {
		return
	}
	partner, paired := c.pairs[initiator]
	if !paired {
		return
	}

	c.dropPair(initiator, partner)
	c.sender.SendTo(initiator, &domain.BaseMessage{Type: domain.MsgTypeLeftPrivate})
	c.sender.SendTo(partner, &domain.BaseMessage{Type: domain.MsgTypePartnerLeftPrivate})

	audit.LogWithDetail(audit.ActionPairEnd, initiator, partner, "private chat ended")

	c.broadcastAll(c.userListMessage())
}

func (c *Coordinator) dropPair(a, b string) {
	delete(c.pairs, a)
	delete(c.pairs, b)
}
