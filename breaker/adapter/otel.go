package adapter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bjaus/resilient/breaker"
)

// OTelObserver turns breaker state transitions into counter increments on
// a caller-supplied metric.Meter. It does not own a MeterProvider, an
// exporter, or a resource: this library does not set up process-wide
// telemetry, it only records against whatever Meter the caller already
// built.
type OTelObserver struct {
	transitions metric.Int64Counter
}

// NewOTelObserver builds an OTelObserver against meter. namespace prefixes
// the single counter it registers, e.g. "payments_api" yields
// "payments_api.breaker.transitions".
func NewOTelObserver(meter metric.Meter, namespace string) (*OTelObserver, error) {
	counter, err := meter.Int64Counter(
		namespace+".breaker.transitions",
		metric.WithDescription("circuit breaker state transitions"),
	)
	if err != nil {
		return nil, err
	}
	return &OTelObserver{transitions: counter}, nil
}

// OnOpen, OnClose, and OnHalfOpen are breaker.OnStateChangeFunc values
// meant to be passed to breaker.OnOpen/OnClose/OnHalfOpen at construction:
//
//	c := breaker.New("payments-api",
//	    breaker.OnOpen(obs.OnOpen),
//	    breaker.OnClose(obs.OnClose),
//	    breaker.OnHalfOpen(obs.OnHalfOpen),
//	)
func (o *OTelObserver) OnOpen(name string, from, to breaker.CircuitState) {
	o.record(name, from, to)
}

func (o *OTelObserver) OnClose(name string, from, to breaker.CircuitState) {
	o.record(name, from, to)
}

func (o *OTelObserver) OnHalfOpen(name string, from, to breaker.CircuitState) {
	o.record(name, from, to)
}

func (o *OTelObserver) record(name string, from, to breaker.CircuitState) {
	o.transitions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("circuit", name),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
}
