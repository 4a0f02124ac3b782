package events

import (
	"strings"
	"testing"
	"time"

	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/testutil"
)

func receiveOrFail(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func connectedClient(t *testing.T, manager *HubManager, topic Topic, playerID model.PlayerID) *Client {
	t.Helper()
	hub := manager.GetOrCreateHub(topic)
	client := NewClient(hub, playerID)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	return client
}

func TestBroadcaster_TurnSubmitted(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := connectedClient(t, manager, SessionTopic("SESSION1"), "player-1")
	defer manager.RemoveHub(SessionTopic("SESSION1"))

	broadcaster.TurnSubmitted("SESSION1", model.TurnSubmittedPayload{
		PlayerID: "player-1",
		NewCount: 2,
		Message:  "open the gate",
		Reply:    "who goes there",
	})

	msg := receiveOrFail(t, client)
	if !strings.HasPrefix(msg, "event: turn-submitted\n") {
		t.Errorf("unexpected event framing: %q", msg)
	}
	if !strings.Contains(msg, `"new_count":2`) {
		t.Errorf("payload missing count: %q", msg)
	}
	if !strings.Contains(msg, `"reply":"who goes there"`) {
		t.Errorf("payload missing reply: %q", msg)
	}
}

func TestBroadcaster_TransitionEvents(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := connectedClient(t, manager, SessionTopic("SESSION1"), "player-1")
	defer manager.RemoveHub(SessionTopic("SESSION1"))

	broadcaster.TransitionTick("SESSION1", 3)
	msg := receiveOrFail(t, client)
	if !strings.Contains(msg, "event: transition-tick\n") || !strings.Contains(msg, `"remaining":3`) {
		t.Errorf("unexpected tick event: %q", msg)
	}

	broadcaster.TransitionEnded("SESSION1", model.PhaseAttack)
	msg = receiveOrFail(t, client)
	if !strings.Contains(msg, "event: transition-ended\n") || !strings.Contains(msg, `"phase":"ATTACK"`) {
		t.Errorf("unexpected ended event: %q", msg)
	}
}

func TestBroadcaster_GameComplete(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := connectedClient(t, manager, SessionTopic("SESSION1"), "player-1")
	defer manager.RemoveHub(SessionTopic("SESSION1"))

	broadcaster.GameComplete("SESSION1", "player-2", model.EndReasonSecretRevealed)

	msg := receiveOrFail(t, client)
	if !strings.Contains(msg, "event: game-complete\n") {
		t.Errorf("unexpected event framing: %q", msg)
	}
	if !strings.Contains(msg, `"winner_id":"player-2"`) || !strings.Contains(msg, `"end_reason":"SECRET_REVEALED"`) {
		t.Errorf("unexpected payload: %q", msg)
	}
}

func TestBroadcaster_MatchFound(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	handle := model.ChannelHandle(QueueTopic("player-1"))
	client := connectedClient(t, manager, Topic(handle), "player-1")
	defer manager.RemoveHub(Topic(handle))

	broadcaster.MatchFound(handle, model.MatchFoundPayload{
		SessionID:  "SESSION1",
		OpponentID: "player-2",
	})

	msg := receiveOrFail(t, client)
	if !strings.Contains(msg, "event: match-found\n") {
		t.Errorf("unexpected event framing: %q", msg)
	}
	if !strings.Contains(msg, `"session_id":"SESSION1"`) || !strings.Contains(msg, `"opponent_id":"player-2"`) {
		t.Errorf("unexpected payload: %q", msg)
	}
}

func TestBroadcaster_NoHubIsANoOp(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for the topic; publishing must not create one
	broadcaster.TransitionTick("GHOST", 1)
	if hub := manager.GetHub(SessionTopic("GHOST")); hub != nil {
		t.Error("publish should not create hubs")
	}
}
