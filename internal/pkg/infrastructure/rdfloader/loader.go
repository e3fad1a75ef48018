package rdfloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/diwise/api-offerings/internal/pkg/domain"
	"github.com/diwise/api-offerings/internal/pkg/infrastructure/rdfxml"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-offerings/rdfloader")

const acceptRDFXML string = "application/rdf+xml"

// ParseError is returned when a resource can not be fetched or does not decode as RDF/XML.
type ParseError struct {
	Locator string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing RDF file: %s", e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

//go:generate moq -rm -out loader_mock.go . Loader
type Loader interface {
	Load(ctx context.Context, locator string) ([]domain.Triple, error)
}

func New() Loader {
	return &loader{
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type loader struct {
	httpClient http.Client
}

// Load fetches the RDF/XML document found at locator, which may be an http(s) or file
// URL or a plain path, and returns its triples in document order.
func (l *loader) Load(ctx context.Context, locator string) (triples []domain.Triple, err error) {
	ctx, span := tracer.Start(ctx, "load-rdf-graph")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	body, base, err := l.open(ctx, locator)
	if err != nil {
		err = &ParseError{Locator: locator, Err: err}
		return nil, err
	}
	defer body.Close()

	triples, err = decode(body, base)
	if err != nil {
		err = &ParseError{Locator: locator, Err: err}
		return nil, err
	}

	log.Debug().Msgf("loaded %d triples from %s", len(triples), locator)

	return triples, nil
}

// open returns the document body and the base IRI that relative references in it resolve against
func (l *loader) open(ctx context.Context, locator string) (io.ReadCloser, string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		f, err := os.Open(locator)
		return f, "", err
	}

	switch u.Scheme {
	case "http", "https":
		body, err := l.get(ctx, locator)
		return body, locator, err
	case "file":
		f, err := os.Open(u.Path)
		return f, locator, err
	default:
		f, err := os.Open(locator)
		return f, "", err
	}
}

func (l *loader) get(ctx context.Context, locator string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Add("Accept", acceptRDFXML)

	response, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("request failed, status code not ok: %d", response.StatusCode)
	}

	return response.Body, nil
}

func decode(r io.Reader, base string) ([]domain.Triple, error) {
	decoded, err := rdfxml.Decode(r, base)
	if err != nil {
		return nil, err
	}

	triples := make([]domain.Triple, 0, len(decoded))
	for _, t := range decoded {
		triples = append(triples, domain.NewTriple(t.Subject.String(), t.Predicate.String(), t.Object.String()))
	}

	return triples, nil
}
