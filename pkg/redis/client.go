package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with the operations the application needs
type Client struct {
	rdb    *redis.Client
	config *Config
}

// NewClient creates a Redis client. Connections are opened lazily, so an unreachable server is only
// reported by the first command or by Ping.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = NewRedisConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Redis configuration: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	})

	return &Client{
		rdb:    rdb,
		config: config,
	}, nil
}

// Ping tests the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetConfig returns the Redis configuration
func (c *Client) GetConfig() *Config {
	return c.config
}

// ChannelName constructs the full channel name using the ChannelNamespace::channel format
func (c *Client) ChannelName(channel string) string {
	if c.config.ChannelNamespace != "" {
		return c.config.ChannelNamespace + "::" + channel
	}
	return channel
}

// Publish publishes a message to a channel and returns the number of subscribers that received it
func (c *Client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	return c.rdb.Publish(ctx, c.ChannelName(channel), message).Result()
}

// PublishJSON marshals message to JSON and publishes it to a channel
func (c *Client) PublishJSON(ctx context.Context, channel string, message any) (int64, error) {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message to JSON: %w", err)
	}
	return c.Publish(ctx, channel, jsonData)
}
