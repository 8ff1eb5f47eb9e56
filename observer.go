package shelfmap

import (
	"time"

	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// Observer receives load measurements. internal/metrics provides a
// Prometheus implementation.
type Observer interface {
	// ObserveSource is called once per dataset fetch.
	ObserveSource(name string, records int, elapsed time.Duration, err error)

	// ObserveLoad is called after a successful load.
	ObserveLoad(stats reconciler.ResultStatistics, elapsed time.Duration)

	// ObserveLoadFailure is called when a load fails.
	ObserveLoadFailure(elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveSource(string, int, time.Duration, error) {}
func (nopObserver) ObserveLoad(reconciler.ResultStatistics, time.Duration) {}
func (nopObserver) ObserveLoadFailure(time.Duration, error) {}
