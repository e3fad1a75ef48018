package extraction

import (
	"strings"

	"github.com/diwise/api-offerings/internal/pkg/application/graph"
	"github.com/diwise/api-offerings/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

type Classification int

const (
	Unclassified Classification = iota
	DatasetSubject
	DistributionSubject
)

func (c Classification) String() string {
	switch c {
	case DatasetSubject:
		return "dataset"
	case DistributionSubject:
		return "distribution"
	default:
		return "unclassified"
	}
}

const (
	DefaultDatasetSegment      string = "dataset"
	DefaultDistributionSegment string = "resource"
)

// Classifier decides whether a subject describes a dataset or one of its distributions.
// A declared rdf:type of dcat:Dataset or dcat:Distribution wins when PreferRDFType is set,
// otherwise the second to last path segment of the subject URI is compared to the
// configured segment tokens.
type Classifier struct {
	DatasetSegment      string
	DistributionSegment string
	PreferRDFType       bool
}

func NewClassifier() Classifier {
	return Classifier{
		DatasetSegment:      DefaultDatasetSegment,
		DistributionSegment: DefaultDistributionSegment,
		PreferRDFType:       true,
	}
}

func (c Classifier) Classify(s *graph.Subject) Classification {
	if c.PreferRDFType {
		types := s.All(domain.RDFType)
		if slices.Contains(types, domain.DCATDataset) {
			return DatasetSubject
		}
		if slices.Contains(types, domain.DCATDistribution) {
			return DistributionSubject
		}
	}

	return c.classifyByURI(s.ID)
}

func (c Classifier) classifyByURI(uri string) Classification {
	segments := strings.Split(uri, "/")
	if len(segments) < 2 {
		return Unclassified
	}

	switch segments[len(segments)-2] {
	case c.DatasetSegment:
		return DatasetSubject
	case c.DistributionSegment:
		return DistributionSubject
	default:
		return Unclassified
	}
}
