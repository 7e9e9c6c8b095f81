package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, no-op)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// Incr atomically adds one to the integer at key (missing = 0) and returns the new value.
	// The value reads back through Get as a JSON number.
	Incr(ctx context.Context, key string) (int64, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}

// Noop is used when Redis is disabled: every read is a miss, writes are dropped
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (Noop) Incr(ctx context.Context, key string) (int64, error) {
	return 0, nil
}

func (Noop) Ping(ctx context.Context) error {
	return nil
}
