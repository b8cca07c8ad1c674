package repository

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// AssignmentCursor hands out a monotonically increasing sequence used
// to pick the next agent in round-robin order. Next returns 0 on the
// first call and must advance exactly once per successful read.
type AssignmentCursor interface {
	Next(ctx context.Context) (uint64, error)
}

const assignmentCursorKey = "support-desk:assignment_cursor"

type redisAssignmentCursor struct {
	client *redis.Client
}

// NewRedisAssignmentCursor persists the cursor in Redis so round-robin
// fairness survives restarts and is shared across service instances.
func NewRedisAssignmentCursor(client *redis.Client) AssignmentCursor {
	return &redisAssignmentCursor{client: client}
}

func (c *redisAssignmentCursor) Next(ctx context.Context) (uint64, error) {
	// INCR is atomic and returns the post-increment value, so the
	// sequence observed by callers starts at 0.
	val, err := c.client.Incr(ctx, assignmentCursorKey).Result()
	if err != nil {
		return 0, err
	}
	return uint64(val - 1), nil
}

type memoryAssignmentCursor struct {
	mu sync.Mutex
	n  uint64
}

// NewMemoryAssignmentCursor keeps the cursor in process memory. Used
// when Redis is not configured; the sequence resets on restart.
func NewMemoryAssignmentCursor() AssignmentCursor {
	return &memoryAssignmentCursor{}
}

func (c *memoryAssignmentCursor) Next(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.n
	c.n++
	return n, nil
}
