package stream

import (
	"context"
	"testing"
	"time"

	"github.com/huddlechat/huddle-server/internal/core"
)

func mustEvent(t *testing.T, events <-chan Event, kind EventKind) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed while waiting for event")
		}
		if ev.Kind != kind {
			t.Fatalf("got event kind %d, want %d", ev.Kind, kind)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHubDeliversToRoomSubscribers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	alice := NewSubscriber("a", "ROOM01")
	bob := NewSubscriber("b", "ROOM01")
	carol := NewSubscriber("c", "ROOM02")

	hub.Subscribe(alice)
	hub.Subscribe(bob)
	hub.Subscribe(carol)

	msg := core.Message{ID: "m1", RoomCode: "ROOM01", Author: "alice", Body: "hi"}
	hub.Publish(msg)

	for _, sub := range []*Subscriber{alice, bob} {
		ev := mustEvent(t, sub.Events, EventMessage)
		if ev.Message.ID != "m1" || ev.Room != "ROOM01" {
			t.Fatalf("subscriber %s got unexpected event: %+v", sub.ID, ev)
		}
	}

	select {
	case ev := <-carol.Events:
		t.Fatalf("subscriber of another room received event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	sub := NewSubscriber("a", "ROOM01")
	hub.Subscribe(sub)
	hub.Publish(core.Message{ID: "m1", RoomCode: "ROOM01"})
	mustEvent(t, sub.Events, EventMessage)

	hub.Unsubscribe(sub)
	// Give the hub loop a moment to process the unsubscribe.
	time.Sleep(20 * time.Millisecond)
	hub.Publish(core.Message{ID: "m2", RoomCode: "ROOM01"})

	select {
	case ev := <-sub.Events:
		t.Fatalf("unsubscribed subscriber received event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCloseRoomNotifiesAndCloses(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	sub := NewSubscriber("a", "ROOM01")
	hub.Subscribe(sub)
	hub.Publish(core.Message{ID: "m1", RoomCode: "ROOM01"})
	mustEvent(t, sub.Events, EventMessage)

	hub.CloseRoom("ROOM01")

	ev := mustEvent(t, sub.Events, EventRoomClosed)
	if ev.Room != "ROOM01" {
		t.Fatalf("unexpected room on close event: %+v", ev)
	}

	select {
	case _, ok := <-sub.Events:
		if ok {
			t.Fatal("expected channel to be closed after room close")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHubSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	slow := NewSubscriber("slow", "ROOM01")
	hub.Subscribe(slow)
	// Never read from slow.Events; publish well past its buffer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < cap(slow.Events)*4; i++ {
			hub.Publish(core.Message{ID: "m", RoomCode: "ROOM01"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
