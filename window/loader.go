package window

import (
	"errors"
	"fmt"
)

// Flags is the externally-owned pagination state a ThresholdLoader consults
// before firing. The caller sets Loading before starting its asynchronous
// fetch and clears it (or clears HasMore) when the fetch resolves; the
// loader only ever reads.
type Flags struct {
	// Loading is true while a fetch is in flight.
	Loading bool
	// HasMore is false once the collection is exhausted; the loader then
	// never fires again until the caller resets it.
	HasMore bool
}

// ThresholdLoader watches scroll signals over a scrollable region and
// invokes a caller-supplied fetch callback once the remaining distance to
// the end drops below a threshold. It performs no debouncing beyond the
// Loading gate and has no knowledge of the fetch itself.
type ThresholdLoader struct {
	threshold int
	flags     *Flags
	loadMore  func()
}

// NewThresholdLoader returns a loader that fires loadMore when the distance
// from the end of the scrollable region drops below threshold.
func NewThresholdLoader(threshold int, flags *Flags, loadMore func()) (*ThresholdLoader, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold %d must not be negative", ErrInvalidGeometry, threshold)
	}
	if flags == nil {
		return nil, errors.New("window: threshold loader needs externally owned flags")
	}
	if loadMore == nil {
		return nil, errors.New("window: threshold loader needs a loadMore callback")
	}
	return &ThresholdLoader{threshold: threshold, flags: flags, loadMore: loadMore}, nil
}

// Threshold returns the configured trigger distance.
func (t *ThresholdLoader) Threshold() int { return t.threshold }

// OnScroll feeds one scroll signal into the loader and reports whether it
// fired the callback. It fires at most once per call: the Loading flag is
// the only gate against repeated triggering, so the caller must set it
// before the asynchronous fetch actually starts.
func (t *ThresholdLoader) OnScroll(offset, scrollExtent, viewportExtent int) bool {
	if t.flags.Loading || !t.flags.HasMore {
		return false
	}
	distanceFromEnd := scrollExtent - offset - viewportExtent
	if distanceFromEnd >= t.threshold {
		return false
	}
	t.loadMore()
	return true
}
