package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techmidia/painel/config"
)

const redisPingTimeout = 5 * time.Second

type RedisOptions struct {
	Config config.RedisConfig
	Logger *slog.Logger
	// SkipPing hands back the client unchecked.
	SkipPing bool
}

// ConnectRedis opens the session Redis in the configured mode (cluster,
// sentinel or a single node) and pings it unless told not to.
//
//nolint:ireturn // the mode decides the concrete client
func ConnectRedis(ctx context.Context, opts RedisOptions) (redis.UniversalClient, error) {
	client, desc, err := newRedisClient(opts.Config)
	if err != nil {
		return nil, err
	}

	if !opts.SkipPing {
		if err := pingRedis(ctx, client); err != nil {
			return nil, errors.Join(err, client.Close())
		}
	}
	if opts.Logger != nil {
		opts.Logger.InfoContext(ctx, "redis connected", "mode", opts.Config.Mode(), "addr", redactAddr(desc))
	}
	return client, nil
}

func pingRedis(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// newRedisClient also returns a description of the target for logs.
//
//nolint:ireturn // see ConnectRedis
func newRedisClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	switch {
	case cfg.UseCluster:
		if len(cfg.ClusterNodes) == 0 {
			return nil, "", errors.New("redis cluster mode needs REDIS_CLUSTER_NODES")
		}
		client := redis.NewClusterClient(&redis.ClusterOptions{Addrs: cfg.ClusterNodes, Password: cfg.Password})
		return client, "cluster:" + strings.Join(cfg.ClusterNodes, ","), nil

	case cfg.UseSentinel:
		if len(cfg.SentinelNodes) == 0 {
			return nil, "", errors.New("redis sentinel mode needs REDIS_SENTINEL_NODES")
		}
		client := redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.SentinelMasterName,
			SentinelAddrs:    cfg.SentinelNodes,
			Password:         cfg.Password,
			SentinelPassword: cfg.SentinelPassword,
			DB:               cfg.DB,
		})
		return client, "sentinel:" + cfg.SentinelMasterName, nil
	}

	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis needs REDIS_URI")
	}
	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		// host:port form, credentials from their own variables
		return redis.NewClient(&redis.Options{Addr: uri, Password: cfg.Password, DB: cfg.DB}), uri, nil
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, "", fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), uri, nil
}

// redactAddr hides credentials embedded in a Redis URL or user@host address.
func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if _, host, ok := strings.Cut(addr, "@"); ok {
		return host
	}
	return addr
}
