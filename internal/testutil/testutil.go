// Package testutil provides shared test helpers: a Redis to run stores
// against and fixed clocks.
package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a client plus, when in-process, the server behind it.
type Redis struct {
	Client *redis.Client
	// Server is nil when TEST_REDIS_ADDR points at a real Redis.
	Server *miniredis.Miniredis
}

// SetupTestRedis starts an in-process Redis for t and closes it on cleanup.
// With TEST_REDIS_ADDR set the tests run against that server instead, on
// TEST_REDIS_DB (default 15), which is flushed first.
func SetupTestRedis(t testing.TB) *Redis {
	t.Helper()

	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return externalRedis(t, addr)
	}

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &Redis{Client: client, Server: srv}
}

func externalRedis(t testing.TB, addr string) *Redis {
	t.Helper()

	db := 15
	if v, err := strconv.Atoi(os.Getenv("TEST_REDIS_DB")); err == nil && v >= 0 {
		db = v
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis db %d: %v", db, err)
	}
	return &Redis{Client: client}
}

// FastForward expires keys as if d had passed. A real server gets a sleep.
func (r *Redis) FastForward(d time.Duration) {
	if r.Server != nil {
		r.Server.FastForward(d)
		return
	}
	time.Sleep(d)
}

// FixedTimeFunc returns a clock that always reads t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime is the reference instant shared by service tests.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Clock is a settable time source.
type Clock struct {
	current time.Time
}

func NewClock(start time.Time) *Clock { return &Clock{current: start} }

func (c *Clock) Now() time.Time { return c.current }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.current = c.current.Add(d) }
