package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/techmidia/painel/internal/toast"
)

const (
	hdrRequest        = "Hx-Request"
	hdrHistoryRestore = "Hx-History-Restore-Request"
	hdrTrigger        = "Hx-Trigger"
	hdrRedirect       = "Hx-Redirect"
	hdrReswap         = "Hx-Reswap"
)

func headerTrue(r *http.Request, name string) bool {
	return strings.EqualFold(r.Header.Get(name), "true")
}

// IsHTMX reports whether htmx sent the request.
func IsHTMX(r *http.Request) bool { return headerTrue(r, hdrRequest) }

// WantsPartial reports whether only the content fragment should be rendered.
// A history restore swaps the whole body, so it gets the full document.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !headerTrue(r, hdrHistoryRestore)
}

// HXResponse sets htmx response headers on w. Methods returning *HXResponse chain.
type HXResponse struct {
	w http.ResponseWriter
}

func HTMX(w http.ResponseWriter) *HXResponse { return &HXResponse{w: w} }

// Trigger adds event to Hx-Trigger, keeping events set earlier in the
// response. A nil payload is sent as true; re-adding an event replaces it.
func (x *HXResponse) Trigger(event string, payload any) *HXResponse {
	if event == "" {
		return x
	}
	if payload == nil {
		payload = true
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("true")
	}

	events := triggerEvents(x.w.Header().Get(hdrTrigger))
	events[event] = raw
	if b, err := json.Marshal(events); err == nil { // sorted keys
		x.w.Header().Set(hdrTrigger, string(b))
	}
	return x
}

// Toasts sends the showToast event. An empty list sends nothing.
func (x *HXResponse) Toasts(list []toast.Toast) *HXResponse {
	if len(list) == 0 {
		return x
	}
	return x.Trigger(EventShowToast, list)
}

// Reswap overrides the element's swap strategy; "none" leaves a form in place.
func (x *HXResponse) Reswap(strategy string) *HXResponse {
	x.w.Header().Set(hdrReswap, strategy)
	return x
}

// Redirect makes htmx navigate to url and ends the response with 204.
func (x *HXResponse) Redirect(url string) {
	x.w.Header().Set(hdrRedirect, url)
	x.w.WriteHeader(http.StatusNoContent)
}

// triggerEvents reads an existing Hx-Trigger value, either a JSON object or
// a comma-separated list of event names.
func triggerEvents(h string) map[string]json.RawMessage {
	events := make(map[string]json.RawMessage)
	h = strings.TrimSpace(h)
	if h == "" {
		return events
	}
	if h[0] == '{' {
		if json.Unmarshal([]byte(h), &events) == nil {
			return events
		}
		clear(events)
	}
	for name := range strings.SplitSeq(h, ",") {
		if name = strings.TrimSpace(name); name != "" && name[0] != '{' {
			events[name] = json.RawMessage("true")
		}
	}
	return events
}
