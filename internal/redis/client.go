package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// NewClient parses redisURL and pings the server before returning.
func NewClient(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// Content cache keys.
const (
	ProfileKey = "content:profile"
	SkillsKey  = "content:skills"
)

// ProjectsKey names one cached project listing; featured is "", "true" or "false".
func ProjectsKey(featured string) string {
	if featured == "" {
		return "content:projects:all"
	}
	return fmt.Sprintf("content:projects:featured=%s", featured)
}

// ProjectListKeys are all listing variants, dropped together on any project write.
func ProjectListKeys() []string {
	return []string{ProjectsKey(""), ProjectsKey("true"), ProjectsKey("false")}
}
