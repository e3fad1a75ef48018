package extraction

import (
	"github.com/diwise/api-offerings/internal/pkg/application/graph"
	"github.com/diwise/api-offerings/internal/pkg/domain"
)

type SelectionMode string

const (
	FirstFoundMode     SelectionMode = "first"
	MatchAccessURLMode SelectionMode = "accessURL"
)

// SelectionPolicy decides which distribution subject contributes to the record.
type SelectionPolicy struct {
	Mode      SelectionMode
	AccessURL string
	// Required makes extraction fail with ErrNoDistribution when no distribution qualified.
	Required bool
}

func FirstFound() SelectionPolicy {
	return SelectionPolicy{Mode: FirstFoundMode}
}

func MatchAccessURL(accessURL string) SelectionPolicy {
	return SelectionPolicy{Mode: MatchAccessURLMode, AccessURL: accessURL, Required: true}
}

func (p SelectionPolicy) accepts(s *graph.Subject) bool {
	if p.Mode != MatchAccessURLMode {
		return true
	}

	accessURL, ok := s.First(domain.DCATAccessURL)
	return ok && accessURL == p.AccessURL
}
