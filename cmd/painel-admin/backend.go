package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/techmidia/painel/internal/apiclient"
)

const pingTimeout = 10 * time.Second

func runPingBackend(cmdCtx *commandContext, _ []string) error {
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cmdCtx.Config.Backend.APIURL,
		Timeout: cmdCtx.Config.Backend.Timeout,
		Logger:  cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, pingTimeout)
	defer cancel()
	return pingBackend(ctx, client, cmdCtx.Out)
}

// pingBackend requests the API root anonymously. Any HTTP status counts as
// reachable; only transport failures are errors.
func pingBackend(ctx context.Context, client *apiclient.Client, out io.Writer) error {
	start := time.Now()
	resp, err := client.Do(ctx, apiclient.Request{Path: "/"})
	elapsed := time.Since(start).Round(time.Millisecond)

	status := 0
	switch {
	case err == nil:
		status = resp.Status
	case apiclient.Status(err) != 0:
		status = apiclient.Status(err)
	default:
		return errors.Join(fmt.Errorf("backend %s unreachable", client.BaseURL()), err)
	}
	return writef(out, "Backend %s answered %d in %s\n", client.BaseURL(), status, elapsed)
}
