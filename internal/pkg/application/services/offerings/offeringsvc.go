package offerings

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/api-offerings/internal/pkg/application/config"
	"github.com/diwise/api-offerings/internal/pkg/application/extraction"
	"github.com/diwise/api-offerings/internal/pkg/application/graph"
	"github.com/diwise/api-offerings/internal/pkg/application/projection"
	"github.com/diwise/api-offerings/internal/pkg/infrastructure/rdfloader"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-offerings/svcs/offerings")

// Request identifies the RDF/XML document to create an offering from. A non empty
// AccessURL selects the distribution with that dcat:accessURL.
type Request struct {
	URL       string
	AccessURL string
}

//go:generate moq -rm -out offeringsvc_mock.go . OfferingService
type OfferingService interface {
	Create(ctx context.Context, req Request) (any, error)
}

func NewOfferingService(ctx context.Context, cfg *config.Config, registerer prometheus.Registerer) (OfferingService, error) {
	policy, err := cfg.SelectionPolicy()
	if err != nil {
		return nil, err
	}

	projector, err := projection.New(cfg.Template)
	if err != nil {
		return nil, err
	}

	m, err := newMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register offering metrics: %w", err)
	}

	return newOfferingService(rdfloader.New(), extraction.New(cfg.Classifier()), projector, policy, m), nil
}

func newOfferingService(loader rdfloader.Loader, extractor *extraction.Extractor, projector projection.Projector, policy extraction.SelectionPolicy, m *metrics) *offeringSvc {
	return &offeringSvc{
		loader:    loader,
		extractor: extractor,
		projector: projector,
		policy:    policy,
		metrics:   m,
	}
}

type offeringSvc struct {
	loader    rdfloader.Loader
	extractor *extraction.Extractor
	projector projection.Projector
	policy    extraction.SelectionPolicy
	metrics   *metrics
}

// Create runs the whole pipeline for a single document. Every call builds its own
// graph and record and nothing is shared between calls.
func (svc *offeringSvc) Create(ctx context.Context, req Request) (offering any, err error) {
	start := time.Now()
	defer func() { svc.metrics.observe(start, err) }()

	ctx, span := tracer.Start(ctx, "create-offering")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	policy := svc.policy
	if req.AccessURL != "" {
		policy = extraction.MatchAccessURL(req.AccessURL)
	}

	triples, err := svc.loader.Load(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	g := graph.Flatten(triples)
	log.Debug().Msgf("flattened %d triples into %d subjects", len(triples), g.Len())

	record, err := svc.extractor.Extract(ctx, g, policy)
	if err != nil {
		return nil, err
	}

	return svc.projector.Project(ctx, record)
}
