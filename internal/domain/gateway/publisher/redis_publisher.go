package publisher

import (
	"context"
	"fmt"

	"weather-dashboard/internal/domain/model"
	"weather-dashboard/pkg/redis"
)

// RedisPublisher publishes every view model as JSON on a Redis pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Name() string {
	return "redis"
}

func (p *RedisPublisher) Publish(ctx context.Context, viewModel model.ViewModel) error {
	if _, err := p.client.PublishJSON(ctx, p.channel, viewModel); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Health(ctx context.Context) model.ComponentHealthStatus {
	health := p.client.HealthCheck(ctx)

	details := make(map[string]string, len(health.Details)+1)
	for key, value := range health.Details {
		details[key] = value
	}
	details["channel"] = p.client.ChannelName(p.channel)

	status := model.StatusDown
	if health.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}
