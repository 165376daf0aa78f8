package scorecardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/greenside-club/scoring/app/modules/scorecard/application/parsers"
	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/internal/eventbus"
	"github.com/greenside-club/scoring/internal/observability/attr"
	"github.com/greenside-club/scoring/internal/observability/metrics"

	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// ImportService runs the scorecard pipeline: parse, resolve, persist,
// report. Parsing never writes; all writes happen inside Commit.
type ImportService struct {
	scores   scorecarddb.Repository
	roster   scorecarddb.RosterRepository
	meta     scorecarddb.EventMetaRepository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  metrics.ImportMetrics
	tracer   trace.Tracer
	factory  *parsers.Factory
}

// NewImportService creates a new ImportService.
func NewImportService(
	scores scorecarddb.Repository,
	roster scorecarddb.RosterRepository,
	meta scorecarddb.EventMetaRepository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	importMetrics metrics.ImportMetrics,
	tracer trace.Tracer,
) *ImportService {
	return &ImportService{
		scores:   scores,
		roster:   roster,
		meta:     meta,
		eventBus: eventBus,
		logger:   logger,
		metrics:  importMetrics,
		tracer:   tracer,
		factory:  parsers.NewFactory(),
	}
}

// withOperation wraps a service operation with tracing, duration metrics
// and panic recovery.
func (s *ImportService) withOperation(
	ctx context.Context,
	operationName string,
	eventID sharedtypes.EventID,
	op func(ctx context.Context) error,
) (err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("event_id", eventID.String()),
	))
	defer span.End()

	startTime := time.Now()
	defer func() {
		s.metrics.RecordImportDuration(eventID.String(), time.Since(startTime))
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Recovered from panic in service operation",
				attr.String("operation", operationName),
				attr.EventID("event_id", eventID),
				attr.Any("panic", r),
			)
		}
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.EventID("event_id", eventID),
		attr.ExtractCorrelationID(ctx),
	)

	return op(ctx)
}
