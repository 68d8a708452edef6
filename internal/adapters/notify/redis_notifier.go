package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

const DefaultChannel = "kanso:notifications"

var _ domain.Notifier = (*RedisNotifier)(nil)

// RedisNotifier publishes notifications on a pub/sub channel so any number
// of clients (the CLI, a desktop bridge) can display them.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	enabled bool
	logger  *log.Logger
}

func NewRedisNotifier(rdb *redis.Client, channel string, enabled bool, logger *log.Logger) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &RedisNotifier{
		rdb:     rdb,
		channel: channel,
		enabled: enabled,
		logger:  logger.WithComponent(log.ComponentNotify),
	}
}

// RequestPermission grants when notifications are enabled and the broker
// answers.
func (n *RedisNotifier) RequestPermission(ctx context.Context) (bool, error) {
	if !n.enabled {
		return false, nil
	}
	if err := n.rdb.Ping(ctx).Err(); err != nil {
		return false, fmt.Errorf("notify: redis unreachable: %w", err)
	}
	return true, nil
}

func (n *RedisNotifier) Notify(ctx context.Context, note domain.Notification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("notify: encode: %w", err)
	}

	receivers, err := n.rdb.Publish(ctx, n.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("notify: publish: %w", err)
	}

	n.logger.DebugContext(ctx, "notification published", "channel", n.channel, "receivers", receivers)
	return nil
}

// Listen delivers every notification published on the channel until ctx is
// done. Malformed messages are skipped.
func (n *RedisNotifier) Listen(ctx context.Context, fn func(domain.Notification)) error {
	sub := n.rdb.Subscribe(ctx, n.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("notify: subscribe: %w", err)
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
			var note domain.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &note); err != nil {
				n.logger.WarnContext(ctx, "malformed notification", log.FieldError, err)
				continue
			}
			fn(note)
		}
	}
}
