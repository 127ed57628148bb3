package service

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/mocks"
	"github.com/techmidia/painel/internal/toast"
)

func newBackend(t *testing.T) *mocks.MockBackendAPI {
	t.Helper()
	return mocks.NewMockBackendAPI(gomock.NewController(t))
}

// getJSON fills out with body, the way the real client decodes a reply.
func getJSON(body string) func(context.Context, apiclient.Credentials, string, url.Values, any) error {
	return func(_ context.Context, _ apiclient.Credentials, _ string, _ url.Values, out any) error {
		return json.Unmarshal([]byte(body), out)
	}
}

func sendJSON(body string) func(context.Context, apiclient.Credentials, string, any, any) error {
	return func(_ context.Context, _ apiclient.Credentials, _ string, _, out any) error {
		if out == nil {
			return nil
		}
		return json.Unmarshal([]byte(body), out)
	}
}

func toastContext() (context.Context, *toast.Queue) {
	return toast.WithQueue(context.Background())
}
