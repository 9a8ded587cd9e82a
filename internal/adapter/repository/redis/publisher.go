package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
)

// DefaultChangeChannel is the pub/sub channel carrying change events.
const DefaultChangeChannel = "moneybook:changes"

// ChangePublisher implements usecase.ChangeNotifier over Redis pub/sub so
// other processes observe committed mutations.
type ChangePublisher struct {
	client  *redis.Client
	channel string
	logger  zerolog.Logger
}

// NewChangePublisher creates a new ChangePublisher.
func NewChangePublisher(client *redis.Client, channel string, logger zerolog.Logger) *ChangePublisher {
	if channel == "" {
		channel = DefaultChangeChannel
	}
	return &ChangePublisher{
		client:  client,
		channel: channel,
		logger:  logger.With().Str("component", "change_publisher").Logger(),
	}
}

// Notify publishes event. Delivery is best effort; failures are logged.
func (p *ChangePublisher) Notify(ctx context.Context, event domain.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("encode change event")
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warn().Err(err).Str("entity", event.Entity).Msg("publish change event")
	}
}

// Subscribe delivers events published on the channel to handle until ctx is
// done. Malformed payloads are skipped.
func (p *ChangePublisher) Subscribe(ctx context.Context, handle func(domain.ChangeEvent)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reading.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event domain.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				p.logger.Warn().Err(err).Msg("skip malformed change event")
				continue
			}
			handle(event)
		}
	}
}
