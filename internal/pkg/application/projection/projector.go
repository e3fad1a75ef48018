package projection

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/diwise/api-offerings/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jmespath/go-jmespath"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-offerings/projection")

//go:embed record.schema.json
var recordSchema string

// ProjectionError is returned when the template can not be evaluated against a record.
type ProjectionError struct {
	Template string
	Err      error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("failed to project offering using %s: %s", e.Template, e.Err.Error())
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

//go:generate moq -rm -out projector_mock.go . Projector
type Projector interface {
	Project(ctx context.Context, record *domain.Record) (any, error)
}

// New returns a Projector that evaluates the JMESPath template found at templatePath.
// The template file is read again on every call to Project.
func New(templatePath string) (Projector, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load record schema: %w", err)
	}

	return &projector{
		templatePath: templatePath,
		schema:       schema,
	}, nil
}

type projector struct {
	templatePath string
	schema       *gojsonschema.Schema
}

func (p *projector) Project(ctx context.Context, record *domain.Record) (offering any, err error) {
	_, span := tracer.Start(ctx, "project-offering")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	template, err := os.ReadFile(p.templatePath)
	if err != nil {
		err = fmt.Errorf("failed to read projection template: %w", err)
		return nil, err
	}

	doc, err := toDocument(record)
	if err != nil {
		return nil, err
	}

	err = p.validate(doc)
	if err != nil {
		return nil, err
	}

	expr, err := jmespath.Compile(strings.TrimSpace(string(template)))
	if err != nil {
		err = &ProjectionError{Template: p.templatePath, Err: err}
		return nil, err
	}

	result, err := expr.Search(doc)
	if err != nil {
		err = &ProjectionError{Template: p.templatePath, Err: err}
		return nil, err
	}

	return Prune(result), nil
}

func (p *projector) validate(doc any) error {
	result, err := p.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ProjectionError{Template: p.templatePath, Err: fmt.Errorf("failed to validate record: %w", err)}
	}

	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			reasons = append(reasons, re.String())
		}
		return &ProjectionError{Template: p.templatePath, Err: fmt.Errorf("record does not match the expected shape: %s", strings.Join(reasons, "; "))}
	}

	return nil
}

// toDocument converts the record into the generic map and slice tree that templates are evaluated against.
func toDocument(record *domain.Record) (any, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	var doc any
	err = json.Unmarshal(b, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return doc, nil
}
