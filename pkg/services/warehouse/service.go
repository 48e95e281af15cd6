package warehouse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/warehouse-atlas/pkg/adapters"
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/de-tools/warehouse-atlas/pkg/services/warehouse"

// Source looks a single warehouse up by id
type Source interface {
	Kind() string
	GetWarehouse(ctx context.Context, id string) (*store.Warehouse, error)
}

type LookupService interface {
	GetWarehouseData(ctx context.Context, req domain.WarehouseRequest) (*domain.WarehouseData, error)
}

type Option func(*lookupService)

// WithRequireID rejects empty or blank warehouse ids with domain.ErrInvalidArgument
func WithRequireID(require bool) Option {
	return func(s *lookupService) {
		s.requireID = require
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *lookupService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

type lookupService struct {
	source    Source
	requireID bool
	tracer    trace.Tracer
}

func NewLookupService(source Source, opts ...Option) (LookupService, error) {
	if source == nil {
		return nil, fmt.Errorf("warehouse source is nil")
	}
	s := &lookupService{
		source: source,
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *lookupService) GetWarehouseData(ctx context.Context, req domain.WarehouseRequest) (*domain.WarehouseData, error) {
	ctx, span := s.tracer.Start(ctx, "warehouse_lookup")
	defer span.End()

	span.SetAttributes(
		attribute.String("warehouse.id", req.WarehouseID),
		attribute.String("warehouse.source", s.source.Kind()),
	)

	zerolog.Ctx(ctx).Info().
		Str("warehouse_id", req.WarehouseID).
		Str("source", s.source.Kind()).
		Msg("warehouse data requested")

	if s.requireID && strings.TrimSpace(req.WarehouseID) == "" {
		err := fmt.Errorf("warehouse id is required: %w", domain.ErrInvalidArgument)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	wh, err := s.source.GetWarehouse(ctx, req.WarehouseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup warehouse: %w", err)
		}
		return nil, fmt.Errorf("%s source failed: %w", s.source.Kind(), err)
	}

	data := adapters.MapStoreWarehouseToDomain(*wh)
	data.WarehouseID = req.WarehouseID

	span.SetAttributes(attribute.Int("warehouse.products", len(data.Products)))
	span.SetStatus(codes.Ok, "")
	return &data, nil
}
