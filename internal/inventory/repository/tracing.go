package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// UnitOfWorkWithTracing wraps a unit of work with an OpenTelemetry span per
// transaction, so ledger mutations show up in the trace alongside the HTTP
// and Kafka spans.
type UnitOfWorkWithTracing struct {
	inner domain.UnitOfWork
}

func NewUnitOfWorkWithTracing(inner domain.UnitOfWork) *UnitOfWorkWithTracing {
	return &UnitOfWorkWithTracing{inner: inner}
}

func (u *UnitOfWorkWithTracing) WithinTx(ctx context.Context, fn func(repos domain.RepoSet) error) error {
	ctx, span := tracer.Start(ctx, "repository.WithinTx",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	err := u.inner.WithinTx(ctx, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
