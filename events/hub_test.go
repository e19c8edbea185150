package events

import (
	"testing"

	"github.com/biosecret/go-tasks/models"
)

func TestHubDeliversOnlyToOwner(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe(2)
	defer cancel2()

	hub.Publish(Event{Type: TaskCreated, Task: models.Task{ID: 10, UserID: 1}})

	select {
	case ev := <-ch1:
		if ev.Task.ID != 10 || ev.Type != TaskCreated {
			t.Errorf("got event %+v", ev)
		}
	default:
		t.Fatal("owner's session should receive the event")
	}

	select {
	case ev := <-ch2:
		t.Fatalf("user 2 received user 1's event: %+v", ev)
	default:
	}
}

func TestHubCancelRemovesSession(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(1)
	cancel()

	hub.Publish(Event{Type: TaskDeleted, Task: models.Task{ID: 1, UserID: 1}})

	select {
	case ev := <-ch:
		t.Fatalf("cancelled session received event: %+v", ev)
	default:
	}
}

func TestHubSkipsFullSessions(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(1)
	defer cancel()

	// Overfill the buffer; Publish must not block.
	for i := 0; i < 32; i++ {
		hub.Publish(Event{Type: TaskUpdated, Task: models.Task{ID: i + 1, UserID: 1}})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", got, cap(ch))
	}
}
