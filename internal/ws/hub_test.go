package ws

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

// startHub runs a hub and registers one client, waiting until the Run loop
// has picked it up.
func startHub(t *testing.T) (*Hub, *Client) {
	t.Helper()

	hub := NewHub(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go hub.Run(ctx)

	client := NewClient(hub, nil)
	hub.Register(client)

	deadline := time.After(2 * time.Second)
	for hub.ClientCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		case <-time.After(10 * time.Millisecond):
		}
	}

	return hub, client
}

func receive(t *testing.T, client *Client) []byte {
	t.Helper()

	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("send channel closed")
		}

		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}

	return nil
}

func TestBroadcastEventSequencing(t *testing.T) {
	hub, client := startHub(t)

	hub.BroadcastEvent("catalog.change", json.RawMessage(`{"type":"position","count":3}`))
	hub.BroadcastEvent("import.games.completed", json.RawMessage(`{"games_stored":10}`))

	var first Event
	if err := json.Unmarshal(receive(t, client), &first); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	if first.Type != "catalog.change" {
		t.Errorf("Type: got %q", first.Type)
	}
	if first.ID != 1 {
		t.Errorf("ID: got %d, want 1", first.ID)
	}
	if string(first.Data) != `{"type":"position","count":3}` {
		t.Errorf("Data: got %s", first.Data)
	}
	if first.Time.IsZero() {
		t.Error("Time should be set")
	}

	var second Event
	if err := json.Unmarshal(receive(t, client), &second); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ID: got %d, want 2", second.ID)
	}
}

func TestBroadcastDropsOversizedPayload(t *testing.T) {
	hub, client := startHub(t)

	hub.Broadcast(make([]byte, maxBroadcastPayload+1))
	hub.Broadcast([]byte(`{"ok":true}`))

	if got := string(receive(t, client)); got != `{"ok":true}` {
		t.Errorf("oversized payload should be dropped; received %q", got)
	}
}

func TestShutdownDrainsClients(t *testing.T) {
	hub, client := startHub(t)

	// Drain everything the hub sends until the channel closes.
	go func() {
		for range client.send { //nolint:revive // draining
		}
	}()

	hub.Shutdown()

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount after shutdown: got %d, want 0", hub.ClientCount())
	}
}

func TestEventSequence(t *testing.T) {
	seq := NewEventSequence()

	for want := uint64(1); want <= 3; want++ {
		if got := seq.Next(); got != want {
			t.Errorf("Next(): got %d, want %d", got, want)
		}
	}
}
