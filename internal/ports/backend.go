package ports

import (
	"context"
	"net/url"

	"github.com/techmidia/painel/internal/apiclient"
)

// BackendAPI is the business REST API as seen by the services.
// *apiclient.Client is the production implementation.
type BackendAPI interface {
	Do(ctx context.Context, req apiclient.Request) (*apiclient.Response, error)
	Get(ctx context.Context, creds apiclient.Credentials, path string, query url.Values, out any) error
	Post(ctx context.Context, creds apiclient.Credentials, path string, body, out any) error
	Put(ctx context.Context, creds apiclient.Credentials, path string, body, out any) error
	Delete(ctx context.Context, creds apiclient.Credentials, path string) error
	Upload(ctx context.Context, creds apiclient.Credentials, path string, file apiclient.File, out any) error
}

var _ BackendAPI = (*apiclient.Client)(nil)
