package ecs

import "testing"

type DamageEvent struct {
	Amount int
}

func TestUnregisteredEventErrors(t *testing.T) {
	w := NewWorld()
	if _, err := Writer[DamageEvent](w); err == nil {
		t.Fatalf("expected UnregisteredEventError for an event type never registered")
	}
}

func TestEventDoubleBuffering(t *testing.T) {
	w := NewWorld()
	RegisterEvent[DamageEvent](w)

	writer, err := Writer[DamageEvent](w)
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}
	reader, err := Reader[DamageEvent](w)
	if err != nil {
		t.Fatalf("Reader failed: %v", err)
	}

	// Nothing sent yet; nothing visible.
	if got := len(reader.Iter()); got != 0 {
		t.Fatalf("expected 0 events before any Send, got %d", got)
	}

	writer.Send(DamageEvent{Amount: 5})
	// Still not visible until the next swap (tick boundary).
	if got := len(reader.Iter()); got != 0 {
		t.Fatalf("event sent this tick should not be visible before a swap, got %d events", got)
	}

	w.events.swapAll() // simulates the App.Tick boundary
	events := reader.Iter()
	if len(events) != 1 || events[0].Amount != 5 {
		t.Fatalf("expected the sent event to be visible after one swap, got %v", events)
	}

	// A second swap with nothing new sent drops the event.
	w.events.swapAll()
	if got := len(reader.Iter()); got != 0 {
		t.Fatalf("expected event to be gone after the following swap, got %d", got)
	}
}

func TestEventReaderSeesEventsSentAfterItWasObtained(t *testing.T) {
	w := NewWorld()
	RegisterEvent[DamageEvent](w)
	writer, _ := Writer[DamageEvent](w)
	reader, _ := Reader[DamageEvent](w)

	writer.Send(DamageEvent{Amount: 1})
	writer.Send(DamageEvent{Amount: 2})
	w.events.swapAll()

	events := reader.Iter()
	if len(events) != 2 {
		t.Fatalf("expected 2 buffered events, got %d", len(events))
	}
}
