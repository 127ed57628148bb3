package metrics

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/techmidia/painel/internal/apiclient"
	obserrors "github.com/techmidia/painel/internal/observability/errors"
)

// BackendObserver turns API client outcomes into the backend collectors.
type BackendObserver struct {
	registry *Registry
	inFlight atomic.Int64
}

var _ apiclient.Observer = (*BackendObserver)(nil)

func (o *BackendObserver) RequestStarted(_, _ string) {
	o.inFlight.Add(1)
	o.registry.backendInFlight.Inc()
}

func (o *BackendObserver) RequestFinished(out apiclient.RequestOutcome) {
	o.inFlight.Add(-1)
	o.registry.backendInFlight.Dec()

	method := strings.ToUpper(out.Method)
	resource := Resource(out.Path)
	result, class := ResultSuccess, ""
	if out.Err != nil {
		result = ResultError
		class = obserrors.Classify(out.Err)
	}

	o.registry.backendRequests.WithLabelValues(method, resource, strconv.Itoa(out.Status), result, class).Inc()
	if out.Duration > 0 {
		o.registry.backendDuration.WithLabelValues(method, resource).Observe(out.Duration.Seconds())
	}
}

// InFlight returns the number of calls not yet finished.
func (o *BackendObserver) InFlight() int64 { return o.inFlight.Load() }

// Resource is the first path segment of a backend path.
func Resource(path string) string {
	p := strings.Trim(path, "/")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	first, _, _ := strings.Cut(p, "/")
	return first
}
