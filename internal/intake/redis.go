// Package intake receives print notifications from a Redis pub/sub channel.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	r "github.com/redis/go-redis/v9"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
)

const sourceRedis = "redis"

// NewRedisClient builds a client from the intake configuration.
func NewRedisClient(cfg *config.RedisConfig) *r.Client {
	return r.NewClient(&r.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Subscriber turns channel messages into dispatched print events.
type Subscriber struct {
	rdb        *r.Client
	channel    string
	baseURL    string
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

func NewSubscriber(rdb *r.Client, channel, baseURL string, dispatcher core.JobDispatcher, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		rdb:        rdb,
		channel:    channel,
		baseURL:    baseURL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run subscribes and dispatches messages until ctx is cancelled. Bad messages
// are logged and dropped.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.rdb.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Receive blocks until the subscription is confirmed, surfacing connection errors.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to redis channel %q: %w", s.channel, err)
	}
	s.logger.Info("subscribed to print events", "channel", s.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("redis subscriber stopping", "channel", s.channel)
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := s.HandleMessage(ctx, []byte(msg.Payload)); err != nil {
				s.logger.Warn("dropping print event", "channel", msg.Channel, "error", err)
			}
		}
	}
}

// HandleMessage parses one payload and dispatches the resulting event.
func (s *Subscriber) HandleMessage(ctx context.Context, payload []byte) error {
	n, err := core.ParseNotification(payload)
	if err != nil {
		return err
	}
	event, err := core.EventFromNotification(n, s.baseURL, sourceRedis)
	if err != nil {
		return err
	}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		return fmt.Errorf("failed to dispatch job %s: %w", event.ID, err)
	}
	return nil
}

// Publish sends a notification to channel. relay-cli uses it to enqueue jobs
// without going through the HTTP API.
func Publish(ctx context.Context, rdb *r.Client, channel string, n *core.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	receivers, err := rdb.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %q: %w", channel, err)
	}
	if receivers == 0 {
		return fmt.Errorf("no subscribers on channel %q", channel)
	}
	return nil
}
