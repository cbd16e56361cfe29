package events

import (
	"testing"
	"time"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("Subscribers() = %d, want 2", h.Subscribers())
	}

	h.Publish(EntryAdded, EntryEvent{ID: "x", Date: "2024-01-01", Ts: 1})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Name != EntryAdded {
				t.Fatalf("event name = %s", ev.Name)
			}
			payload, err := DecodeAs[EntryEvent](ev)
			if err != nil {
				t.Fatalf("DecodeAs failed: %v", err)
			}
			if payload.ID != "x" {
				t.Fatalf("payload = %+v", payload)
			}
		case <-time.After(time.Second):
			t.Fatalf("event not delivered")
		}
	}

	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatalf("unsubscribed channel should be closed")
	}
	h.Unsubscribe(a)
	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers())
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Publish(ReminderDue, ReminderEvent{DaysSinceLastEntry: i})
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected a full buffer, got %d/%d", len(ch), cap(ch))
	}
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	h.Publish(ConfigChanged, ConfigEvent{Key: "sex"})
}

func TestDecodeAsEmpty(t *testing.T) {
	v, err := DecodeAs[ReminderEvent](Event{Name: ReminderDue})
	if err != nil || v.DaysSinceLastEntry != 0 {
		t.Fatalf("DecodeAs on empty data = %+v, %v", v, err)
	}
}
