package graph

import (
	"github.com/diwise/api-offerings/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

// Graph indexes triples by subject and predicate. Subjects and the predicates of
// each subject are kept in the order they were first seen.
type Graph struct {
	order    []string
	subjects map[string]*Subject
}

type Subject struct {
	ID     string
	order  []string
	values map[string][]string
}

// Flatten builds a Graph from triples in a single pass. Objects are appended to the
// value sequence of their subject and predicate without deduplication.
func Flatten(triples []domain.Triple) *Graph {
	g := &Graph{
		order:    make([]string, 0),
		subjects: make(map[string]*Subject),
	}

	for _, t := range triples {
		g.add(t)
	}

	return g
}

func (g *Graph) add(t domain.Triple) {
	s, ok := g.subjects[t.Subject]
	if !ok {
		s = &Subject{
			ID:     t.Subject,
			order:  make([]string, 0),
			values: make(map[string][]string),
		}
		g.subjects[t.Subject] = s
		g.order = append(g.order, t.Subject)
	}

	if _, ok := s.values[t.Predicate]; !ok {
		s.order = append(s.order, t.Predicate)
	}

	s.values[t.Predicate] = append(s.values[t.Predicate], t.Object)
}

func (g *Graph) Len() int {
	return len(g.order)
}

// Subjects returns the subjects of the graph in first seen order.
func (g *Graph) Subjects() []*Subject {
	subjects := make([]*Subject, 0, len(g.order))
	for _, id := range g.order {
		subjects = append(subjects, g.subjects[id])
	}
	return subjects
}

func (g *Graph) Subject(id string) (*Subject, bool) {
	s, ok := g.subjects[id]
	return s, ok
}

// Equal reports whether both graphs hold the same subjects, predicates and value
// sequences in the same order.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || !slices.Equal(g.order, other.order) {
		return false
	}

	for _, id := range g.order {
		if !g.subjects[id].Equal(other.subjects[id]) {
			return false
		}
	}

	return true
}

// Predicates returns the predicates of the subject in first seen order.
func (s *Subject) Predicates() []string {
	return slices.Clone(s.order)
}

func (s *Subject) Has(predicate string) bool {
	_, ok := s.values[predicate]
	return ok
}

// First returns the first value of predicate, which is the authoritative one for single valued fields.
func (s *Subject) First(predicate string) (string, bool) {
	values, ok := s.values[predicate]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (s *Subject) All(predicate string) []string {
	return slices.Clone(s.values[predicate])
}

func (s *Subject) Equal(other *Subject) bool {
	if other == nil || s.ID != other.ID || !slices.Equal(s.order, other.order) {
		return false
	}

	for _, p := range s.order {
		if !slices.Equal(s.values[p], other.values[p]) {
			return false
		}
	}

	return true
}
