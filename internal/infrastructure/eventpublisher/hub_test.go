package eventpublisher

import (
	"context"
	"testing"

	"github.com/iho/moneybook/internal/domain"
)

type recordingNotifier struct {
	events []domain.ChangeEvent
}

func (r *recordingNotifier) Notify(_ context.Context, e domain.ChangeEvent) {
	r.events = append(r.events, e)
}

func TestHubFansOutAndForwards(t *testing.T) {
	remote := &recordingNotifier{}
	hub := NewHub(remote)

	first, cancelFirst := hub.Subscribe(4)
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe(4)
	defer cancelSecond()

	hub.Notify(context.Background(), domain.ChangeEvent{Entity: domain.EntityAccount, Kind: domain.ChangeDeleted, IDs: []string{"a1"}})

	for i, ch := range []<-chan domain.ChangeEvent{first, second} {
		select {
		case e := <-ch:
			if e.Entity != domain.EntityAccount || e.Origin != hub.Origin() || e.At.IsZero() {
				t.Fatalf("subscriber %d got %+v", i, e)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}

	if len(remote.events) != 1 || remote.events[0].Origin != hub.Origin() {
		t.Fatalf("expected one forwarded event stamped with origin, got %+v", remote.events)
	}
}

func TestHubDoesNotBlockOnFullSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	for i := 0; i < 5; i++ {
		hub.Notify(context.Background(), domain.ChangeEvent{Entity: domain.EntityTransaction})
	}

	if got := len(ch); got != 1 {
		t.Fatalf("expected buffer of one, got %d", got)
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}

	// Notify after cancel must not panic on the closed channel.
	hub.Notify(context.Background(), domain.ChangeEvent{Entity: domain.EntityAll})
}

func TestHubDeliverRemoteSkipsOwnEvents(t *testing.T) {
	remote := &recordingNotifier{}
	hub := NewHub(remote)
	ch, cancel := hub.Subscribe(4)
	defer cancel()

	hub.DeliverRemote(domain.ChangeEvent{Entity: domain.EntityBudget, Origin: hub.Origin()})
	hub.DeliverRemote(domain.ChangeEvent{Entity: domain.EntityBudget, Origin: "other-process"})

	if got := len(ch); got != 1 {
		t.Fatalf("expected only the foreign event, got %d", got)
	}
	if len(remote.events) != 0 {
		t.Fatalf("remote events must not be forwarded again, got %d", len(remote.events))
	}
}
