package events

import (
	"testing"
	"time"

	"github.com/promptduel/promptduel-go/internal/testutil"
)

func TestTopicNames(t *testing.T) {
	if got := SessionTopic("ABC123"); got != "session:ABC123" {
		t.Errorf("SessionTopic() = %q", got)
	}
	if got := QueueTopic("player-1"); got != "queue:player-1" {
		t.Errorf("QueueTopic() = %q", got)
	}
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "turn-submitted",
			data:      `{"new_count":1}`,
			expected:  "event: turn-submitted\ndata: {\"new_count\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "turn-submitted",
			data:      "line1\nline2",
			expected:  "event: turn-submitted\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "two lines",
			input:    "line1\nline2",
			expected: []string{"line1", "line2"},
		},
		{
			name:     "trailing newline",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "crlf line endings",
			input:    "line1\r\nline2\r\n",
			expected: []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(SessionTopic("TESTSESSION1"), testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player-1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("turn-submitted", []byte(`{"new_count":1}`))

	select {
	case msg := <-client.send:
		expected := "event: turn-submitted\ndata: {\"new_count\":1}\n\n"
		if string(msg) != expected {
			t.Errorf("received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(SessionTopic("TESTSESSION1"), testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	one := NewClient(hub, "player-1")
	two := NewClient(hub, "player-2")
	hub.Register(one)
	hub.Register(two)
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast([]byte("hello"))

	for _, client := range []*Client{one, two} {
		select {
		case msg := <-client.send:
			if string(msg) != "hello" {
				t.Errorf("received %q, want %q", string(msg), "hello")
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s timed out waiting for broadcast", client.playerID)
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(SessionTopic("TESTSESSION1"), testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player-1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHub_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub(SessionTopic("TESTSESSION1"), testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player-1")
	// Fill the client's buffer so further sends would block
	for i := 0; i < sendBufferSize; i++ {
		client.send <- []byte("fill")
	}
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte("dropped"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub(SessionTopic("SESSION1"))
	hub2 := manager.GetOrCreateHub(SessionTopic("SESSION1"))
	if hub1 != hub2 {
		t.Error("expected the same hub for the same topic")
	}

	other := manager.GetOrCreateHub(SessionTopic("SESSION2"))
	if other == hub1 {
		t.Error("expected a distinct hub per topic")
	}
	defer manager.RemoveHub(SessionTopic("SESSION1"))
	defer manager.RemoveHub(SessionTopic("SESSION2"))
}

func TestHubManager_GetHubReturnsNilForUnknownTopic(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	if hub := manager.GetHub(SessionTopic("NOPE")); hub != nil {
		t.Error("expected nil for unknown topic")
	}
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	empty := manager.GetOrCreateHub(SessionTopic("EMPTY"))
	occupied := manager.GetOrCreateHub(SessionTopic("OCCUPIED"))
	_ = empty

	client := NewClient(occupied, "player-1")
	occupied.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub(SessionTopic("EMPTY")) != nil {
		t.Error("expected empty hub to be removed")
	}
	if manager.GetHub(SessionTopic("OCCUPIED")) == nil {
		t.Error("expected occupied hub to survive cleanup")
	}
	manager.RemoveHub(SessionTopic("OCCUPIED"))
}
