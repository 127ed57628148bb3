package apiclient

import (
	"sync"
	"time"
)

// Observer is notified around every backend call. RequestFinished is always
// called once for each RequestStarted, including on failure.
type Observer interface {
	RequestStarted(method, path string)
	RequestFinished(outcome RequestOutcome)
}

// RequestOutcome summarizes a finished call.
type RequestOutcome struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) RequestStarted(string, string)  {}
func (NopObserver) RequestFinished(RequestOutcome) {}

// InFlight counts calls that have started but not finished.
// It is the server-side counterpart of a global loading indicator.
type InFlight struct {
	mu       sync.Mutex
	active   int
	started  int
	finished int
}

// RequestStarted implements Observer.
func (f *InFlight) RequestStarted(string, string) {
	f.mu.Lock()
	f.active++
	f.started++
	f.mu.Unlock()
}

// RequestFinished implements Observer.
func (f *InFlight) RequestFinished(RequestOutcome) {
	f.mu.Lock()
	f.active--
	f.finished++
	f.mu.Unlock()
}

// Active reports calls currently in flight.
func (f *InFlight) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Counts reports how many calls started and finished.
func (f *InFlight) Counts() (started, finished int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started, f.finished
}

// Observers fans out to several observers in order.
type Observers []Observer

// RequestStarted implements Observer.
func (o Observers) RequestStarted(method, path string) {
	for _, obs := range o {
		if obs != nil {
			obs.RequestStarted(method, path)
		}
	}
}

// RequestFinished implements Observer.
func (o Observers) RequestFinished(outcome RequestOutcome) {
	for _, obs := range o {
		if obs != nil {
			obs.RequestFinished(outcome)
		}
	}
}
