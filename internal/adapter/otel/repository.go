package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/parkhaus/parkhaus/internal/domain"
)

const tracerName = "github.com/parkhaus/parkhaus/internal/adapter/otel"

// TracingParkingRepository wraps a domain.ParkingRepository with
// OpenTelemetry tracing. The parking repository is the contended path of
// the system, so each method gets a span with the space and tenant
// involved; a claim lost to a race shows up as an error span.
type TracingParkingRepository struct {
	next   domain.ParkingRepository
	tracer trace.Tracer
}

// Compile-time check: TracingParkingRepository implements domain.ParkingRepository.
var _ domain.ParkingRepository = (*TracingParkingRepository)(nil)

// NewTracingParkingRepository creates a tracing decorator around the given repository.
func NewTracingParkingRepository(next domain.ParkingRepository) *TracingParkingRepository {
	return &TracingParkingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingParkingRepository) Create(ctx context.Context, space domain.ParkingSpace) error {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.Create",
		trace.WithAttributes(
			attribute.String("parking.id", space.ID),
			attribute.String("parking.space_number", space.SpaceNumber),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, space)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingParkingRepository) GetByID(ctx context.Context, id string) (domain.ParkingSpace, error) {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.GetByID",
		trace.WithAttributes(attribute.String("parking.id", id)),
	)
	defer span.End()

	space, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return space, err
}

func (r *TracingParkingRepository) GetBySpaceNumber(ctx context.Context, spaceNumber string) (domain.ParkingSpace, error) {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.GetBySpaceNumber",
		trace.WithAttributes(attribute.String("parking.space_number", spaceNumber)),
	)
	defer span.End()

	space, err := r.next.GetBySpaceNumber(ctx, spaceNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return space, err
}

func (r *TracingParkingRepository) List(ctx context.Context, filter domain.ParkingFilter) ([]domain.ParkingSpace, error) {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}
	if filter.TenantID != "" {
		span.SetAttributes(attribute.String("filter.tenant_id", filter.TenantID))
	}

	spaces, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(spaces)))
	}
	return spaces, err
}

func (r *TracingParkingRepository) AvailableUnassigned(ctx context.Context) ([]domain.ParkingSpace, error) {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.AvailableUnassigned")
	defer span.End()

	spaces, err := r.next.AvailableUnassigned(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(spaces)))
	}
	return spaces, err
}

func (r *TracingParkingRepository) Claim(ctx context.Context, spaceID, tenantID string) error {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.Claim",
		trace.WithAttributes(
			attribute.String("parking.id", spaceID),
			attribute.String("tenant.id", tenantID),
		),
	)
	defer span.End()

	err := r.next.Claim(ctx, spaceID, tenantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingParkingRepository) Release(ctx context.Context, spaceID string) error {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.Release",
		trace.WithAttributes(attribute.String("parking.id", spaceID)),
	)
	defer span.End()

	err := r.next.Release(ctx, spaceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingParkingRepository) Update(ctx context.Context, space domain.ParkingSpace) error {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.Update",
		trace.WithAttributes(
			attribute.String("parking.id", space.ID),
			attribute.String("parking.status", string(space.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, space)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingParkingRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ParkingRepository.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return count, err
}
