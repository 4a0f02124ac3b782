package model

import "time"

// ChannelHandle is the realtime-delivery address for a queued player
// (the topic their match notification is published to)
type ChannelHandle string

// QueueEntry is an ephemeral record of a player waiting for a match.
// It lives only in process memory and is destroyed on pairing or cancel.
type QueueEntry struct {
	PlayerID      PlayerID
	ChannelHandle ChannelHandle
	JoinedAt      time.Time
}

// Match pairs the two oldest queue entries
type Match struct {
	PlayerOne QueueEntry
	PlayerTwo QueueEntry
}

// Contains returns true if the player is part of this match
func (m *Match) Contains(playerID PlayerID) bool {
	return m.PlayerOne.PlayerID == playerID || m.PlayerTwo.PlayerID == playerID
}
