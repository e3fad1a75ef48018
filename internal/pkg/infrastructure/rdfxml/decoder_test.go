package rdfxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const (
	dctNS  string = "http://purl.org/dc/terms/"
	dcatNS string = "http://www.w3.org/ns/dcat#"
	locnNS string = "http://www.w3.org/ns/locn#"
	xsdNS  string = "http://www.w3.org/2001/XMLSchema#"
)

type statement struct {
	s, p, o string
}

func statements(triples []Triple) []statement {
	result := []statement{}
	for _, t := range triples {
		result = append(result, statement{t.Subject.String(), t.Predicate.String(), t.Object.String()})
	}
	return result
}

func TestThatNestedNodeElementsAreDecoded(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(nestedDatasetRDF), "")
	is.NoErr(err)

	dataset := "https://example.org/dataset/abc"
	distribution := "https://example.org/dataset/abc/resource/1"

	is.Equal(statements(triples), []statement{
		{dataset, RDFType, dcatNS + "Dataset"},
		{dataset, dctNS + "title", "Parkeringsplatser"},
		{dataset, dcatNS + "keyword", "parking"},
		{dataset, dcatNS + "keyword", "traffic"},
		{"_:1", RDFType, dctNS + "Location"},
		{"_:1", locnNS + "geometry", "POINT(17.3 62.4)"},
		{dataset, dctNS + "spatial", "_:1"},
		{distribution, RDFType, dcatNS + "Distribution"},
		{distribution, dctNS + "format", "CSV"},
		{distribution, dcatNS + "accessURL", "https://example.org/files/parking.csv"},
		{dataset, dcatNS + "distribution", distribution},
	})
}

func TestThatNodeIDsAreLabelledTheSameInEveryPosition(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(nodeIDRDF), "")
	is.NoErr(err)

	is.Equal(len(triples), 3)
	is.Equal(triples[0].Object, Term{Kind: BlankNode, Value: "L1"})
	is.Equal(triples[1].Subject, Term{Kind: BlankNode, Value: "L1"})
	is.Equal(triples[0].Object.String(), "_:L1")
	is.Equal(triples[2].Subject.String(), "_:L1")
}

func TestThatLiteralsKeepLanguageAndDatatype(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(literalsRDF), "")
	is.NoErr(err)

	is.Equal(len(triples), 2)
	is.Equal(triples[0].Object, Term{Kind: Literal, Value: "Parkering", Language: "sv"})
	is.Equal(triples[1].Object, Term{Kind: Literal, Value: "2023-01-01", Datatype: xsdNS + "date"})
}

func TestThatRelativeReferencesResolveAgainstBase(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(relativeRDF), "https://example.org/catalog/dcat.rdf")
	is.NoErr(err)

	is.Equal(statements(triples), []statement{
		{"https://example.org/catalog/dataset/1", dcatNS + "accessURL", "https://example.org/files/data.csv"},
		{"https://example.org/catalog/dcat.rdf#local", dctNS + "title", "Local"},
	})
}

func TestThatParseTypeResourceAndPropertyAttributesCreateBlankNodes(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(parseTypeRDF), "")
	is.NoErr(err)

	is.Equal(statements(triples), []statement{
		{"https://example.org/dataset/abc", dctNS + "publisher", "_:1"},
		{"_:1", dctNS + "title", "Sundsvalls kommun"},
		{"https://example.org/dataset/abc", dctNS + "creator", "_:2"},
		{"_:2", dctNS + "title", "Stadsbyggnad"},
	})
}

func TestThatContainersAndCollectionsAreExpanded(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(collectionRDF), "")
	is.NoErr(err)

	is.Equal(statements(triples), []statement{
		{"https://example.org/dataset/abc", RDFType, rdfNS + "Bag"},
		{"https://example.org/dataset/abc", rdfNS + "_1", "a"},
		{"https://example.org/dataset/abc", rdfNS + "_2", "b"},
		{"https://example.org/dataset/abc", dcatNS + "theme", "_:1"},
		{"_:1", RDFFirst, "https://example.org/x"},
		{"_:1", RDFRest, RDFNil},
	})
}

func TestThatDocumentsWithoutRDFRootAreRejected(t *testing.T) {
	is := is.New(t)

	for _, doc := range []string{"", "   \n", "not xml at all", "<foo/>", `<?xml version="1.0"?><dcat:Dataset xmlns:dcat="http://www.w3.org/ns/dcat#"/>`} {
		_, err := Decode(strings.NewReader(doc), "")
		is.True(errors.Is(err, ErrNoRDFRoot)) // document should be rejected

		var syntaxErr *SyntaxError
		is.True(errors.As(err, &syntaxErr))
	}
}

func TestThatMalformedDocumentsAreRejected(t *testing.T) {
	is := is.New(t)

	for _, doc := range []string{
		`<rdf:RDF xmlns:rdf="` + rdfNS + `"><rdf:Description rdf:about="x">`,
		`<rdf:RDF xmlns:rdf="` + rdfNS + `" xmlns:dct="` + dctNS + `"><rdf:Description><dct:title>a</dct:description></rdf:Description></rdf:RDF>`,
		`<rdf:RDF xmlns:rdf="` + rdfNS + `"></rdf:RDF><rdf:RDF xmlns:rdf="` + rdfNS + `"></rdf:RDF>`,
		`<rdf:RDF xmlns:rdf="` + rdfNS + `" xmlns:dct="` + dctNS + `"><rdf:Description rdf:about="a" rdf:nodeID="b"/></rdf:RDF>`,
		`<rdf:RDF xmlns:rdf="` + rdfNS + `" xmlns:dct="` + dctNS + `"><rdf:Description><dct:spatial rdf:resource="a">text</dct:spatial></rdf:Description></rdf:RDF>`,
	} {
		_, err := Decode(strings.NewReader(doc), "")

		var syntaxErr *SyntaxError
		is.True(errors.As(err, &syntaxErr)) // malformed document should fail
	}
}

func TestThatAnEmptyRDFRootHasNoTriples(t *testing.T) {
	is := is.New(t)

	triples, err := Decode(strings.NewReader(`<rdf:RDF xmlns:rdf="`+rdfNS+`"/>`), "")
	is.NoErr(err)
	is.Equal(len(triples), 0)
}

const nestedDatasetRDF string = `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xmlns:dcat="http://www.w3.org/ns/dcat#"
  xmlns:locn="http://www.w3.org/ns/locn#">
  <dcat:Dataset rdf:about="https://example.org/dataset/abc">
    <dct:title>Parkeringsplatser</dct:title>
    <dcat:keyword>parking</dcat:keyword>
    <dcat:keyword>traffic</dcat:keyword>
    <dct:spatial>
      <dct:Location>
        <locn:geometry>POINT(17.3 62.4)</locn:geometry>
      </dct:Location>
    </dct:spatial>
    <dcat:distribution>
      <dcat:Distribution rdf:about="https://example.org/dataset/abc/resource/1">
        <dct:format>CSV</dct:format>
        <dcat:accessURL rdf:resource="https://example.org/files/parking.csv"/>
      </dcat:Distribution>
    </dcat:distribution>
  </dcat:Dataset>
</rdf:RDF>`

const nodeIDRDF string = `<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xmlns:locn="http://www.w3.org/ns/locn#">
  <rdf:Description rdf:about="https://example.org/dataset/abc">
    <dct:spatial rdf:nodeID="L1"/>
  </rdf:Description>
  <dct:Location rdf:nodeID="L1">
    <locn:geometry>POINT(17.3 62.4)</locn:geometry>
  </dct:Location>
</rdf:RDF>`

const literalsRDF string = `<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xml:lang="sv">
  <rdf:Description rdf:about="https://example.org/dataset/abc">
    <dct:title>Parkering</dct:title>
    <dct:issued rdf:datatype="http://www.w3.org/2001/XMLSchema#date">2023-01-01</dct:issued>
  </rdf:Description>
</rdf:RDF>`

const relativeRDF string = `<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/"
  xmlns:dcat="http://www.w3.org/ns/dcat#">
  <rdf:Description rdf:about="dataset/1">
    <dcat:accessURL rdf:resource="../files/data.csv"/>
  </rdf:Description>
  <rdf:Description rdf:ID="local">
    <dct:title>Local</dct:title>
  </rdf:Description>
</rdf:RDF>`

const parseTypeRDF string = `<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dct="http://purl.org/dc/terms/">
  <rdf:Description rdf:about="https://example.org/dataset/abc">
    <dct:publisher rdf:parseType="Resource">
      <dct:title>Sundsvalls kommun</dct:title>
    </dct:publisher>
    <dct:creator dct:title="Stadsbyggnad"/>
  </rdf:Description>
</rdf:RDF>`

const collectionRDF string = `<rdf:RDF
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dcat="http://www.w3.org/ns/dcat#">
  <rdf:Bag rdf:about="https://example.org/dataset/abc">
    <rdf:li>a</rdf:li>
    <rdf:li>b</rdf:li>
    <dcat:theme rdf:parseType="Collection">
      <rdf:Description rdf:about="https://example.org/x"/>
    </dcat:theme>
  </rdf:Bag>
</rdf:RDF>`
