package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream completion events are appended to.
const DefaultStream = "code_submissions"

// RedisPublisher appends completion events to a Redis stream.
type RedisPublisher struct {
	rdb    redis.Cmdable
	stream string
}

func NewRedisPublisher(rdb redis.Cmdable, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{rdb: rdb, stream: stream}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Completed) error {
	err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: ToValues(ev),
		ID:     "*",
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// ToValues flattens an event into stream fields.
func ToValues(ev Completed) map[string]interface{} {
	return map[string]interface{}{
		"submission_id": strconv.FormatInt(int64(ev.SubmissionID), 10),
		"token":         ev.Token,
		"username":      ev.Username,
		"language":      ev.Language,
		"status":        ev.Status,
		"created_at":    ev.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromValues is the inverse of ToValues, for stream consumers.
func FromValues(values map[string]interface{}) (Completed, error) {
	getStr := func(k string) string {
		if v, ok := values[k].(string); ok {
			return v
		}
		return ""
	}

	id, err := strconv.ParseInt(getStr("submission_id"), 10, 32)
	if err != nil {
		return Completed{}, fmt.Errorf("submission_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, getStr("created_at"))
	if err != nil {
		return Completed{}, fmt.Errorf("created_at: %w", err)
	}
	return Completed{
		SubmissionID: int32(id),
		Token:        getStr("token"),
		Username:     getStr("username"),
		Language:     getStr("language"),
		Status:       getStr("status"),
		CreatedAt:    createdAt,
	}, nil
}
