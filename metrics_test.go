package adminauth

import (
	"sync"
	"testing"
)

func TestMetricsIncAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricSignInSuccess)
	m.Inc(MetricSignInSuccess)
	m.Inc(MetricSignOut)

	snap := m.Snapshot()
	if snap.Counters[MetricSignInSuccess] != 2 {
		t.Errorf("signin_success = %d, want 2", snap.Counters[MetricSignInSuccess])
	}
	if snap.Counters[MetricSignOut] != 1 {
		t.Errorf("signout = %d, want 1", snap.Counters[MetricSignOut])
	}
	if snap.Counters[MetricRefreshFailure] != 0 {
		t.Errorf("refresh_failure = %d, want 0", snap.Counters[MetricRefreshFailure])
	}
}

func TestMetricsDisabledAndNil(t *testing.T) {
	m := NewMetrics(MetricsConfig{})
	m.Inc(MetricSignInSuccess)
	if n := m.Snapshot().Counters[MetricSignInSuccess]; n != 0 {
		t.Errorf("disabled counter = %d, want 0", n)
	}

	var nilMetrics *Metrics
	nilMetrics.Inc(MetricSignInSuccess) // must not panic
	if snap := nilMetrics.Snapshot(); len(snap.Counters) != 0 {
		t.Errorf("nil snapshot has %d counters", len(snap.Counters))
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(MetricMarkerWritten)
			}
		}()
	}
	wg.Wait()

	if n := m.Snapshot().Counters[MetricMarkerWritten]; n != 8000 {
		t.Errorf("marker_written = %d, want 8000", n)
	}
}

func TestMetricIDString(t *testing.T) {
	if got := MetricSignInFailure.String(); got != "signin_failure" {
		t.Errorf("String() = %q", got)
	}
	if got := MetricID(200).String(); got != "unknown" {
		t.Errorf("out-of-range String() = %q", got)
	}
}
