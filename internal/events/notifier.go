package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Topic names carried on the change feed. A subscriber on a topic gets a
// fresh snapshot of its query whenever the topic fires.
func TopicChat(chatID string) string      { return "chat." + chatID }
func TopicUserChats(userID string) string { return "chats." + userID }

const (
	TopicRooms = "rooms"
	TopicUsers = "users"
)

// Notifier is the write-side of the change feed. Every document write that
// should reach a live view publishes the topics it invalidates.
type Notifier interface {
	Notify(ctx context.Context, topics ...string)
}

// RedisNotifier fans topics out through a single pub/sub channel so every
// instance sees every change, wherever the write landed.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	log     *zap.SugaredLogger
}

func NewRedisNotifier(client *redis.Client, prefix string, log *zap.SugaredLogger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: fmt.Sprintf("%s:events", prefix),
		log:     log,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, topics ...string) {
	for _, t := range topics {
		if err := n.client.Publish(ctx, n.channel, t).Err(); err != nil {
			n.log.Warnw("publish change event", "topic", t, "err", err)
		}
	}
}

// Listen delivers each published topic to fn until ctx is cancelled.
func (n *RedisNotifier) Listen(ctx context.Context, fn func(topic string)) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}
