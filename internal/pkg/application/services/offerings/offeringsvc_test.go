package offerings

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/diwise/api-offerings/internal/pkg/application/config"
	"github.com/diwise/api-offerings/internal/pkg/application/extraction"
	"github.com/diwise/api-offerings/internal/pkg/application/projection"
	"github.com/diwise/api-offerings/internal/pkg/domain"
	"github.com/diwise/api-offerings/internal/pkg/infrastructure/rdfloader"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput

func TestThatItWorks(t *testing.T) {
	is, ctx, ms := testSetup(t, http.StatusOK, trafficFlowRDF)

	cfg := config.Default()
	cfg.Template = filepath.Join("..", "..", "..", "..", "..", "offering.template.jmespath")

	svc, err := NewOfferingService(ctx, cfg, prometheus.NewRegistry())
	is.NoErr(err)

	result, err := svc.Create(ctx, Request{URL: ms.URL() + "/dataset/transportation_trafficflowobserved.rdf"})
	is.NoErr(err)

	offering := result.(map[string]any)
	is.Equal(offering["offering"], map[string]any{"title": "Traffic Flow"})
	is.Equal(offering["asset"], map[string]any{
		"provision": map[string]any{"accessURL": "http://example.org/data"},
	})
}

func TestThatNestedDCATDocumentsBecomeOfferings(t *testing.T) {
	is, ctx, ms := testSetup(t, http.StatusOK, nestedDatasetRDF)

	cfg := config.Default()
	cfg.Template = filepath.Join("..", "..", "..", "..", "..", "offering.template.jmespath")

	svc, err := NewOfferingService(ctx, cfg, nil)
	is.NoErr(err)

	result, err := svc.Create(ctx, Request{URL: ms.URL() + "/catalog.rdf"})
	is.NoErr(err)

	offering := result.(map[string]any)
	is.Equal(offering["offering"], map[string]any{
		"title":       "Parkeringsplatser",
		"description": "Parking spaces in the city centre",
		"issued":      "2023-01-01T00:00:00",
		"publisher":   "https://example.org/organization/sundsvall",
		"license":     "http://creativecommons.org/publicdomain/zero/1.0/",
	})
	is.Equal(offering["asset"], map[string]any{
		"keywords":    []any{"parking", "traffic"},
		"spatial":     "POINT(17.3 62.4)",
		"description": "Parking spaces in the city centre",
		"issued":      "2023-01-01T00:00:00",
		"provision": map[string]any{
			"title":     "Parking spaces (CSV)",
			"format":    "CSV",
			"accessURL": "https://example.org/files/parking.csv",
		},
	})
	is.Equal(offering["usageRights"], map[string]any{
		"permission":  []any{},
		"prohibition": []any{},
		"obligation":  []any{},
	})
}

func TestThatCreateFailsOnMalformedRDF(t *testing.T) {
	is, ctx, ms := testSetup(t, http.StatusOK, "<rdf:RDF><oops></rdf:RDF>")

	cfg := config.Default()
	svc, err := NewOfferingService(ctx, cfg, nil)
	is.NoErr(err)

	_, err = svc.Create(ctx, Request{URL: ms.URL()})

	var parseErr *rdfloader.ParseError
	is.True(errors.As(err, &parseErr))
}

func TestThatAccessURLSelectsDistribution(t *testing.T) {
	is := is.New(t)

	loader := &rdfloader.LoaderMock{
		LoadFunc: func(ctx context.Context, locator string) ([]domain.Triple, error) {
			return []domain.Triple{
				domain.NewTriple("http://example.org/resource/1", domain.DCATAccessURL, "http://example.org/first"),
				domain.NewTriple("http://example.org/resource/2", domain.DCATAccessURL, "http://example.org/second"),
			}, nil
		},
	}

	projector := &projection.ProjectorMock{
		ProjectFunc: func(ctx context.Context, record *domain.Record) (any, error) {
			return *record.AssetProvision.AccessURL, nil
		},
	}

	svc := newOfferingService(loader, extraction.New(extraction.NewClassifier()), projector, extraction.FirstFound(), nil)

	result, err := svc.Create(context.Background(), Request{URL: "dcat.rdf", AccessURL: "http://example.org/second"})
	is.NoErr(err)
	is.Equal(result, "http://example.org/second")

	result, err = svc.Create(context.Background(), Request{URL: "dcat.rdf"})
	is.NoErr(err)
	is.Equal(result, "http://example.org/first") // should fall back to the configured policy

	is.Equal(len(loader.LoadCalls()), 2)
	is.Equal(loader.LoadCalls()[0].Locator, "dcat.rdf")

	_, err = svc.Create(context.Background(), Request{URL: "dcat.rdf", AccessURL: "http://example.org/nope"})
	is.True(errors.Is(err, extraction.ErrNoDistribution))
	is.Equal(len(projector.ProjectCalls()), 2) // projection should not run when extraction fails
}

func TestThatOutcomesAreCounted(t *testing.T) {
	is := is.New(t)

	loader := &rdfloader.LoaderMock{
		LoadFunc: func(ctx context.Context, locator string) ([]domain.Triple, error) {
			if locator == "broken.rdf" {
				return nil, &rdfloader.ParseError{Locator: locator, Err: errors.New("XML syntax error")}
			}
			return []domain.Triple{}, nil
		},
	}

	projector := &projection.ProjectorMock{
		ProjectFunc: func(ctx context.Context, record *domain.Record) (any, error) {
			return map[string]any{}, nil
		},
	}

	m, err := newMetrics(prometheus.NewRegistry())
	is.NoErr(err)

	svc := newOfferingService(loader, extraction.New(extraction.NewClassifier()), projector, extraction.FirstFound(), m)

	_, err = svc.Create(context.Background(), Request{URL: "dcat.rdf"})
	is.NoErr(err)
	_, err = svc.Create(context.Background(), Request{URL: "broken.rdf"})
	is.True(err != nil)

	is.Equal(testutil.ToFloat64(m.created.WithLabelValues("success")), 1.0)
	is.Equal(testutil.ToFloat64(m.created.WithLabelValues("failure")), 1.0)
}

func TestThatMetricsCanOnlyBeRegisteredOnce(t *testing.T) {
	is := is.New(t)

	registry := prometheus.NewRegistry()

	_, err := NewOfferingService(context.Background(), config.Default(), registry)
	is.NoErr(err)

	_, err = NewOfferingService(context.Background(), config.Default(), registry)
	is.True(err != nil) // duplicate registration should fail
}

func testSetup(t *testing.T, statusCode int, responseBody string) (*is.I, context.Context, testutils.MockService) {
	is := is.New(t)
	ctx := context.Background()

	ms := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(statusCode),
			response.ContentType("application/rdf+xml"),
			response.Body([]byte(responseBody)),
		),
	)

	return is, ctx, ms
}

const trafficFlowRDF string = `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xmlns:dcat="http://www.w3.org/ns/dcat#">
  <rdf:Description rdf:about="http://example.org/dataset/123">
    <dct:title>Traffic Flow</dct:title>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/resource/456">
    <dcat:accessURL rdf:resource="http://example.org/data"/>
  </rdf:Description>
</rdf:RDF>`

const nestedDatasetRDF string = `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xmlns:dcat="http://www.w3.org/ns/dcat#"
  xmlns:locn="http://www.w3.org/ns/locn#">
  <dcat:Dataset rdf:about="https://example.org/dataset/abc">
    <dct:title>Parkeringsplatser</dct:title>
    <dct:description>Parking spaces in the city centre</dct:description>
    <dct:issued rdf:datatype="http://www.w3.org/2001/XMLSchema#dateTime">2023-01-01T00:00:00</dct:issued>
    <dct:publisher rdf:resource="https://example.org/organization/sundsvall"/>
    <dcat:keyword>parking</dcat:keyword>
    <dcat:keyword>traffic</dcat:keyword>
    <dct:spatial>
      <dct:Location>
        <locn:geometry rdf:datatype="http://www.opengis.net/ont/geosparql#wktLiteral">POINT(17.3 62.4)</locn:geometry>
      </dct:Location>
    </dct:spatial>
    <dcat:distribution>
      <dcat:Distribution rdf:about="https://example.org/dataset/abc/resource/1">
        <dct:title>Parking spaces (CSV)</dct:title>
        <dct:format>CSV</dct:format>
        <dct:license rdf:resource="http://creativecommons.org/publicdomain/zero/1.0/"/>
        <dcat:accessURL rdf:resource="https://example.org/files/parking.csv"/>
      </dcat:Distribution>
    </dcat:distribution>
  </dcat:Dataset>
</rdf:RDF>`
