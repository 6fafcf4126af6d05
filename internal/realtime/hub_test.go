package realtime

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedstream/feed-api/internal/core/domain"
	"github.com/feedstream/feed-api/internal/core/ports"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	hub.Publish(ports.Event{Action: ports.ActionCreate, PostID: "p1", Post: &domain.Post{ID: "p1"}})

	select {
	case event := <-sub.Events():
		if event.Action != ports.ActionCreate || event.PostID != "p1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber did not receive event")
	}
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// must return immediately, nothing to assert beyond not hanging
	hub.Publish(ports.Event{Action: ports.ActionDelete, PostID: "p1"})
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer+5; i++ {
			hub.Publish(ports.Event{Action: ports.ActionUpdate, PostID: "p1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a saturated subscriber")
	}

	received := 0
	for {
		select {
		case <-sub.Events():
			received++
		default:
			if received != subscriberBuffer {
				t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, received)
			}
			return
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe()
	hub.Unsubscribe(sub)

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed")
	}

	// publishing after unsubscribe must not panic
	hub.Publish(ports.Event{Action: ports.ActionCreate, PostID: "p2"})
}

func TestFrame_DeleteCarriesOnlyID(t *testing.T) {
	frame := newFrame(ports.Event{Action: ports.ActionDelete, PostID: "p9"})
	id, ok := frame.Post.(string)
	if !ok || id != "p9" {
		t.Fatalf("expected delete frame to carry the id string, got %#v", frame.Post)
	}

	post := &domain.Post{ID: "p3"}
	frame = newFrame(ports.Event{Action: ports.ActionCreate, Post: post, PostID: "p3"})
	if frame.Post != any(post) {
		t.Fatalf("expected create frame to carry the full post")
	}
}
