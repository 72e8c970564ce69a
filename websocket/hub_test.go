package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if hub.ClientCount() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("client count never reached %d (now %d)", want, hub.ClientCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, ID: 1, Send: make(chan []byte, 8)}
	hub.Register <- client
	waitForClientCount(t, hub, 1)

	hub.Unregister <- client
	waitForClientCount(t, hub, 0)

	// The send channel is closed on unregister
	select {
	case _, open := <-client.Send:
		if open {
			t.Error("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed")
	}
}

func TestHubBroadcastsBatchEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{Hub: hub, ID: 1, Send: make(chan []byte, 8)}
	second := &Client{Hub: hub, ID: 2, Send: make(chan []byte, 8)}
	hub.Register <- first
	hub.Register <- second
	waitForClientCount(t, hub, 2)

	hub.NotifyBatchSubmitted(BatchSubmittedData{
		TrainNo:    "12301",
		TrainName:  "Howrah Rajdhani Express",
		ReportDate: "2024-03-15",
		Count:      12,
	})

	for _, client := range []*Client{first, second} {
		select {
		case payload := <-client.Send:
			var msg Message
			if err := json.Unmarshal(payload, &msg); err != nil {
				t.Fatalf("client %d got unparseable payload: %v", client.ID, err)
			}
			if msg.Type != "batch_submitted" {
				t.Errorf("client %d message type = %q", client.ID, msg.Type)
			}
			data := msg.Data.(map[string]interface{})
			if data["trainNo"] != "12301" || data["count"].(float64) != 12 {
				t.Errorf("client %d data = %v", client.ID, data)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("client %d never received the batch event", client.ID)
		}
	}
}

func TestNotifyBatchSubmittedNeverBlocks(t *testing.T) {
	// No Run loop draining the channel; fill it past its buffer
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.NotifyBatchSubmitted(BatchSubmittedData{TrainNo: "12301", Count: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyBatchSubmitted blocked on a full channel")
	}
}
