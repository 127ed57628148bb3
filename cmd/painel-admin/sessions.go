package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	redisadapter "github.com/techmidia/painel/internal/adapters/redis"
	"github.com/techmidia/painel/internal/bootstrap"
	"github.com/techmidia/painel/internal/ports"
)

const sessionCommandTimeout = 2 * time.Minute

var errPurgeNotConfirmed = errors.New("refusing to purge sessions without --yes")

type purgeOptions struct {
	Yes    bool
	DryRun bool
}

func parsePurgeFlags(args []string) (purgeOptions, error) {
	var opts purgeOptions
	fs := flag.NewFlagSet("purge-sessions", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.Yes, "yes", false, "confirm deletion of every stored session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "only report how many sessions would be deleted")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse flags: %w", err)
	}
	return opts, nil
}

// withSessionStore connects Redis, hands fn the session store and closes the client.
func withSessionStore(cmdCtx *commandContext, fn func(ctx context.Context, admin ports.SessionAdmin) error) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, sessionCommandTimeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(ctx, bootstrap.RedisOptions{Config: cmdCtx.Config.Redis, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func(c redis.UniversalClient) {
		if closeErr := c.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}(client)

	return fn(ctx, redisadapter.NewSessionStoreWithPrefix(client, cmdCtx.Config.Session.KeyPrefix))
}

func runSessions(cmdCtx *commandContext, _ []string) error {
	return withSessionStore(cmdCtx, func(ctx context.Context, admin ports.SessionAdmin) error {
		return countSessions(ctx, admin, cmdCtx.Out)
	})
}

func runPurgeSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parsePurgeFlags(args)
	if err != nil {
		return err
	}
	if !opts.Yes && !opts.DryRun {
		return errPurgeNotConfirmed
	}
	return withSessionStore(cmdCtx, func(ctx context.Context, admin ports.SessionAdmin) error {
		return purgeSessions(ctx, admin, opts, cmdCtx.Out)
	})
}

func countSessions(ctx context.Context, admin ports.SessionAdmin, out io.Writer) error {
	n, err := admin.Count(ctx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	return writef(out, "Active sessions: %d\n", n)
}

func purgeSessions(ctx context.Context, admin ports.SessionAdmin, opts purgeOptions, out io.Writer) error {
	if opts.DryRun {
		n, err := admin.Count(ctx)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		return writef(out, "Would delete %d sessions (dry run)\n", n)
	}
	n, err := admin.Purge(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	return writef(out, "Deleted %d sessions\n", n)
}
