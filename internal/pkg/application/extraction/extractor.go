package extraction

import (
	"context"
	"errors"

	"github.com/diwise/api-offerings/internal/pkg/application/graph"
	"github.com/diwise/api-offerings/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrNoDistribution = errors.New("no valid distribution found in the RDF data for the access URL given")

type Extractor struct {
	classifier Classifier
}

func New(classifier Classifier) *Extractor {
	return &Extractor{classifier: classifier}
}

// Extract copies the known dataset and distribution fields of g into a new Record. The
// first dataset subject and the first distribution accepted by policy contribute, in
// graph order, and extraction stops once both have been found.
func (e *Extractor) Extract(ctx context.Context, g *graph.Graph, policy SelectionPolicy) (*domain.Record, error) {
	log := logging.GetFromContext(ctx)

	record := &domain.Record{}

	datasetFound := false
	distributionFound := false

	for _, s := range g.Subjects() {
		switch e.classifier.Classify(s) {
		case DatasetSubject:
			if datasetFound {
				continue
			}
			copyDatasetFields(g, s, record)
			datasetFound = true
			log.Debug().Msgf("extracted dataset fields from %s", s.ID)

		case DistributionSubject:
			if distributionFound || !policy.accepts(s) {
				continue
			}
			copyDistributionFields(s, record)
			distributionFound = true
			log.Debug().Msgf("extracted distribution fields from %s", s.ID)

		default:
			continue
		}

		if datasetFound && distributionFound {
			break
		}
	}

	if !distributionFound && policy.Required {
		return nil, ErrNoDistribution
	}

	return record, nil
}

func copyDatasetFields(g *graph.Graph, s *graph.Subject, record *domain.Record) {
	o := &record.Offering
	o.Issued = first(s, domain.DCTIssued)
	o.Language = first(s, domain.DCTLanguage)
	o.Title = first(s, domain.DCTTitle)
	o.Description = first(s, domain.DCTDescription)
	o.Publisher = first(s, domain.DCTPublisher)
	o.Creator = first(s, domain.DCTCreator)

	a := &record.Asset
	a.Theme = first(s, domain.DCATTheme)
	if s.Has(domain.DCATKeyword) {
		a.Keywords = s.All(domain.DCATKeyword)
	}
	a.Spatial = geometry(g, s)
	a.Description = first(s, domain.DCTDescription)
	a.Issued = first(s, domain.DCTIssued)
	a.Creator = first(s, domain.DCTCreator)
}

func copyDistributionFields(s *graph.Subject, record *domain.Record) {
	record.Offering.License = first(s, domain.DCTLicense)

	p := &record.AssetProvision
	p.Title = first(s, domain.DCTTitle)
	p.Format = first(s, domain.DCTFormat)
	p.Description = first(s, domain.DCTDescription)
	p.Issued = first(s, domain.DCTIssued)
	p.AccessURL = first(s, domain.DCATAccessURL)

	record.UsageRights = domain.NewUsageRights()
}

// geometry prefers a locn:geometry on the dataset itself and falls back to the
// geometry of the location its dct:spatial refers to.
func geometry(g *graph.Graph, s *graph.Subject) *string {
	if v := first(s, domain.LOCNGeometry); v != nil {
		return v
	}

	ref, ok := s.First(domain.DCTSpatial)
	if !ok {
		return nil
	}

	location, ok := g.Subject(ref)
	if !ok {
		return nil
	}

	return first(location, domain.LOCNGeometry)
}

func first(s *graph.Subject, predicate string) *string {
	v, ok := s.First(predicate)
	if !ok {
		return nil
	}
	return &v
}
