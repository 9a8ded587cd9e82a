package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
)

func TestChangePublisherRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	pub := NewChangePublisher(client, "", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan domain.ChangeEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- pub.Subscribe(ctx, func(e domain.ChangeEvent) { received <- e })
	}()

	// Publish until the subscriber is attached.
	deadline := time.After(2 * time.Second)
	event := domain.ChangeEvent{Entity: domain.EntityTransaction, Kind: domain.ChangeUpserted, IDs: []string{"t1"}}
	for {
		pub.Notify(ctx, event)
		select {
		case got := <-received:
			if got.Entity != event.Entity || got.Kind != event.Kind || len(got.IDs) != 1 || got.IDs[0] != "t1" {
				t.Fatalf("unexpected event %+v", got)
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("subscribe returned %v", err)
			}
			return
		case <-deadline:
			t.Fatal("event was not delivered")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestChangePublisherNotifyWithRedisDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()
	mr.Close()

	// Must not panic or block.
	NewChangePublisher(client, "c", zerolog.Nop()).Notify(context.Background(), domain.ChangeEvent{Entity: domain.EntityAll})
}
