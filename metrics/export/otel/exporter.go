// Package otel bridges the in-process adminauth counters to OpenTelemetry
// observable instruments. Counters are read on collection via a registered
// callback; the hot path stays a plain atomic increment.
package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/adminkit/adminauth"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() adminauth.MetricsSnapshot
}

type counterDef struct {
	id   adminauth.MetricID
	name string
	help string
}

var counterDefs = []counterDef{
	{id: adminauth.MetricSignInSuccess, name: "adminauth_signin_success_total", help: "Successful sign-ins."},
	{id: adminauth.MetricSignInFailure, name: "adminauth_signin_failure_total", help: "Rejected sign-ins."},
	{id: adminauth.MetricRefreshSuccess, name: "adminauth_refresh_success_total", help: "Successful token rotations."},
	{id: adminauth.MetricRefreshFailure, name: "adminauth_refresh_failure_total", help: "Failed token rotations."},
	{id: adminauth.MetricSignOut, name: "adminauth_signout_total", help: "Sign-outs."},
	{id: adminauth.MetricMarkerWritten, name: "adminauth_marker_written_total", help: "Session marker writes."},
}

type observedCounter struct {
	id         adminauth.MetricID
	instrument metric.Int64ObservableCounter
}

// Exporter registers the adminauth counters as OTel observable counters.
type Exporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
}

// NewExporter wires the service's counters to the given meter.
func NewExporter(meter metric.Meter, service *adminauth.Service) (*Exporter, error) {
	return NewExporterFromSource(meter, service)
}

// NewExporterFromSource wires any snapshot source to the given meter.
func NewExporterFromSource(meter metric.Meter, source metricsSource) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &Exporter{
		source:   source,
		counters: make([]observedCounter, 0, len(counterDefs)),
	}

	observables := make([]metric.Observable, 0, len(counterDefs))
	for _, def := range counterDefs {
		ins, err := meter.Int64ObservableCounter(def.name, metric.WithDescription(def.help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.id, instrument: ins})
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := exporter.source.MetricsSnapshot()
		for _, c := range exporter.counters {
			observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

// Close unregisters the collection callback.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
