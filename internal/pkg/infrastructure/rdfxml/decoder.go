package rdfxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS = "http://www.w3.org/XML/1998/namespace"

	RDFType        string = rdfNS + "type"
	RDFFirst       string = rdfNS + "first"
	RDFRest        string = rdfNS + "rest"
	RDFNil         string = rdfNS + "nil"
	RDFXMLLiteral  string = rdfNS + "XMLLiteral"
	xmlnsNamespace string = "xmlns"
)

var (
	rdfRDF         = xml.Name{Space: rdfNS, Local: "RDF"}
	rdfDescription = xml.Name{Space: rdfNS, Local: "Description"}
	rdfLi          = xml.Name{Space: rdfNS, Local: "li"}
	rdfAbout       = xml.Name{Space: rdfNS, Local: "about"}
	rdfID          = xml.Name{Space: rdfNS, Local: "ID"}
	rdfNodeID      = xml.Name{Space: rdfNS, Local: "nodeID"}
	rdfResource    = xml.Name{Space: rdfNS, Local: "resource"}
	rdfDatatype    = xml.Name{Space: rdfNS, Local: "datatype"}
	rdfParseType   = xml.Name{Space: rdfNS, Local: "parseType"}
	rdfTypeAttr    = xml.Name{Space: rdfNS, Local: "type"}

	xmlLang = xml.Name{Space: xmlNS, Local: "lang"}
	xmlBase = xml.Name{Space: xmlNS, Local: "base"}
)

// rdf names that may be used neither as node nor as property elements
var syntaxNames = []string{"RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "datatype", "aboutEach", "aboutEachPrefix"}

var ErrNoRDFRoot = errors.New("document has no rdf:RDF root element")

type TermKind int

const (
	IRI TermKind = iota
	BlankNode
	Literal
)

type Term struct {
	Kind     TermKind
	Value    string
	Language string
	Datatype string
}

// String returns the IRI, the blank node label as _:id or the lexical value of a literal.
func (t Term) String() string {
	if t.Kind == BlankNode {
		return "_:" + t.Value
	}
	return t.Value
}

type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Err.Error())
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Decode reads a complete RDF/XML document from r and returns its triples in document
// order. Relative IRIs are resolved against base, or left as they are if base is empty.
func Decode(r io.Reader, base string) ([]Triple, error) {
	d := &decoder{
		xd:      xml.NewDecoder(r),
		triples: []Triple{},
	}

	err := d.document(scope{base: base})
	if err != nil {
		return nil, err
	}

	return d.triples, nil
}

type decoder struct {
	xd      *xml.Decoder
	triples []Triple
	bnodes  int
}

// scope holds the inherited xml:base and xml:lang of an element
type scope struct {
	base string
	lang string
}

func (s scope) enter(el xml.StartElement) scope {
	for _, a := range el.Attr {
		switch a.Name {
		case xmlBase:
			s.base = s.resolve(a.Value)
		case xmlLang:
			s.lang = a.Value
		}
	}
	return s
}

func (s scope) resolve(ref string) string {
	if s.base == "" {
		return ref
	}

	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}

	b, err := url.Parse(s.base)
	if err != nil {
		return ref
	}

	return b.ResolveReference(r).String()
}

func (d *decoder) document(s scope) error {
	for {
		tok, err := d.xd.Token()
		if errors.Is(err, io.EOF) {
			return d.fail(ErrNoRDFRoot)
		}
		if err != nil {
			return d.fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name != rdfRDF {
				return d.fail(ErrNoRDFRoot)
			}
			err = d.nodeElementList(s.enter(t))
			if err != nil {
				return err
			}
			return d.trailer()
		case xml.CharData:
			if !isWhitespace(t) {
				return d.fail(ErrNoRDFRoot)
			}
		}
	}
}

func (d *decoder) trailer() error {
	for {
		tok, err := d.xd.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return d.fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return d.errorf("unexpected element %s after rdf:RDF", t.Name.Local)
		case xml.CharData:
			if !isWhitespace(t) {
				return d.errorf("unexpected text after rdf:RDF")
			}
		}
	}
}

func (d *decoder) nodeElementList(s scope) error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			_, err = d.nodeElement(t, s.enter(t))
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if !isWhitespace(t) {
				return d.errorf("unexpected text between node elements")
			}
		}
	}
}

func (d *decoder) nodeElement(el xml.StartElement, s scope) (Term, error) {
	if el.Name.Space == rdfNS && (el.Name.Local == "li" || slices.Contains(syntaxNames, el.Name.Local)) {
		return Term{}, d.errorf("rdf:%s is not allowed as a node element", el.Name.Local)
	}

	subject, err := d.subject(el, s)
	if err != nil {
		return Term{}, err
	}

	if el.Name != rdfDescription {
		d.emit(subject, iri(RDFType), iri(el.Name.Space+el.Name.Local))
	}

	for _, a := range el.Attr {
		if a.Name == rdfAbout || a.Name == rdfID || a.Name == rdfNodeID || isIgnoredAttr(a) {
			continue
		}
		if a.Name == rdfTypeAttr {
			d.emit(subject, iri(RDFType), iri(s.resolve(a.Value)))
			continue
		}
		if a.Name.Space == rdfNS && slices.Contains(syntaxNames, a.Name.Local) {
			return Term{}, d.errorf("rdf:%s is not allowed on a node element", a.Name.Local)
		}
		d.emit(subject, iri(a.Name.Space+a.Name.Local), literal(a.Value, s.lang, ""))
	}

	return subject, d.propertyElementList(subject, s)
}

func (d *decoder) subject(el xml.StartElement, s scope) (Term, error) {
	about, hasAbout := attr(el, rdfAbout)
	id, hasID := attr(el, rdfID)
	nodeID, hasNodeID := attr(el, rdfNodeID)

	if count(hasAbout, hasID, hasNodeID) > 1 {
		return Term{}, d.errorf("rdf:about, rdf:ID and rdf:nodeID are mutually exclusive")
	}

	switch {
	case hasAbout:
		return iri(s.resolve(about)), nil
	case hasID:
		return iri(s.resolve("#" + id)), nil
	case hasNodeID:
		return blank(nodeID), nil
	default:
		return d.newBlank(), nil
	}
}

func (d *decoder) propertyElementList(subject Term, s scope) error {
	li := 0

	for {
		tok, err := d.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = d.propertyElement(subject, t, s.enter(t), &li)
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if !isWhitespace(t) {
				return d.errorf("unexpected text between property elements")
			}
		}
	}
}

func (d *decoder) propertyElement(subject Term, el xml.StartElement, s scope, li *int) error {
	predicate := iri(el.Name.Space + el.Name.Local)

	if el.Name == rdfLi {
		*li++
		predicate = iri(rdfNS + "_" + strconv.Itoa(*li))
	} else if el.Name.Space == rdfNS && (el.Name.Local == "Description" || slices.Contains(syntaxNames, el.Name.Local)) {
		return d.errorf("rdf:%s is not allowed as a property element", el.Name.Local)
	}

	parseType, hasParseType := attr(el, rdfParseType)
	resource, hasResource := attr(el, rdfResource)
	nodeID, hasNodeID := attr(el, rdfNodeID)
	datatype, hasDatatype := attr(el, rdfDatatype)

	if hasResource && hasNodeID {
		return d.errorf("rdf:resource and rdf:nodeID are mutually exclusive")
	}

	if hasParseType {
		if hasResource || hasNodeID || hasDatatype {
			return d.errorf("rdf:parseType can not be combined with rdf:resource, rdf:nodeID or rdf:datatype")
		}

		switch parseType {
		case "Resource":
			object := d.newBlank()
			d.emit(subject, predicate, object)
			return d.propertyElementList(object, s)
		case "Collection":
			return d.collection(subject, predicate, s)
		default:
			value, err := d.xmlLiteral()
			if err != nil {
				return err
			}
			d.emit(subject, predicate, literal(value, "", RDFXMLLiteral))
			return nil
		}
	}

	// rdf:ID on a property element would reify the statement, which is not materialised
	props := []xml.Attr{}
	for _, a := range el.Attr {
		if a.Name == rdfResource || a.Name == rdfNodeID || a.Name == rdfDatatype || a.Name == rdfID || isIgnoredAttr(a) {
			continue
		}
		if a.Name.Space == rdfNS && a.Name != rdfTypeAttr && slices.Contains(syntaxNames, a.Name.Local) {
			return d.errorf("rdf:%s is not allowed on a property element", a.Name.Local)
		}
		props = append(props, a)
	}

	var text bytes.Buffer
	var object *Term

	for {
		tok, err := d.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if object != nil {
				return d.errorf("property element %s has more than one node element", el.Name.Local)
			}
			n, err := d.nodeElement(t, s.enter(t))
			if err != nil {
				return err
			}
			object = &n
		case xml.EndElement:
			if object != nil {
				if !isWhitespace(text.Bytes()) {
					return d.errorf("property element %s mixes text and elements", el.Name.Local)
				}
				if hasResource || hasNodeID || hasDatatype || len(props) > 0 {
					return d.errorf("property element %s has both attributes and a node element", el.Name.Local)
				}
				d.emit(subject, predicate, *object)
				return nil
			}

			if !hasResource && !hasNodeID && len(props) == 0 {
				if hasDatatype {
					d.emit(subject, predicate, literal(text.String(), "", s.resolve(datatype)))
				} else {
					d.emit(subject, predicate, literal(text.String(), s.lang, ""))
				}
				return nil
			}

			if !isWhitespace(text.Bytes()) {
				return d.errorf("property element %s has both a value and resource attributes", el.Name.Local)
			}
			if hasDatatype {
				return d.errorf("rdf:datatype is not allowed on an empty property element")
			}

			var value Term
			switch {
			case hasResource:
				value = iri(s.resolve(resource))
			case hasNodeID:
				value = blank(nodeID)
			default:
				value = d.newBlank()
			}

			d.emit(subject, predicate, value)

			for _, a := range props {
				if a.Name == rdfTypeAttr {
					d.emit(value, iri(RDFType), iri(s.resolve(a.Value)))
					continue
				}
				d.emit(value, iri(a.Name.Space+a.Name.Local), literal(a.Value, s.lang, ""))
			}

			return nil
		}
	}
}

func (d *decoder) collection(subject, predicate Term, s scope) error {
	items := []Term{}

	for {
		tok, err := d.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			item, err := d.nodeElement(t, s.enter(t))
			if err != nil {
				return err
			}
			items = append(items, item)
		case xml.CharData:
			if !isWhitespace(t) {
				return d.errorf("unexpected text in collection")
			}
		case xml.EndElement:
			if len(items) == 0 {
				d.emit(subject, predicate, iri(RDFNil))
				return nil
			}

			cells := make([]Term, len(items))
			for i := range items {
				cells[i] = d.newBlank()
			}

			d.emit(subject, predicate, cells[0])
			for i, item := range items {
				d.emit(cells[i], iri(RDFFirst), item)
				if i+1 < len(cells) {
					d.emit(cells[i], iri(RDFRest), cells[i+1])
				} else {
					d.emit(cells[i], iri(RDFRest), iri(RDFNil))
				}
			}
			return nil
		}
	}
}

// xmlLiteral re-serializes the content of the current element up to its end tag.
func (d *decoder) xmlLiteral() (string, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	depth := 0

	for {
		tok, err := d.token()
		if err != nil {
			return "", err
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				if err = enc.Flush(); err != nil {
					return "", d.fail(err)
				}
				return buf.String(), nil
			}
			depth--
		case xml.ProcInst:
			continue
		}

		if err = enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", d.fail(err)
		}
	}
}

func (d *decoder) token() (xml.Token, error) {
	tok, err := d.xd.Token()
	if errors.Is(err, io.EOF) {
		return nil, d.fail(io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, d.fail(err)
	}
	return tok, nil
}

func (d *decoder) emit(subject, predicate, object Term) {
	d.triples = append(d.triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

// newBlank labels generated nodes with plain numbers, which can not clash with an
// rdf:nodeID since those must be XML names.
func (d *decoder) newBlank() Term {
	d.bnodes++
	return blank(strconv.Itoa(d.bnodes))
}

func (d *decoder) fail(err error) error {
	return &SyntaxError{Offset: d.xd.InputOffset(), Err: err}
}

func (d *decoder) errorf(format string, args ...any) error {
	return d.fail(fmt.Errorf(format, args...))
}

func iri(value string) Term {
	return Term{Kind: IRI, Value: value}
}

func blank(id string) Term {
	return Term{Kind: BlankNode, Value: id}
}

func literal(value, lang, datatype string) Term {
	return Term{Kind: Literal, Value: value, Language: lang, Datatype: datatype}
}

func attr(el xml.StartElement, name xml.Name) (string, bool) {
	for _, a := range el.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// isIgnoredAttr reports namespace declarations, xml:* attributes and unqualified attributes
func isIgnoredAttr(a xml.Attr) bool {
	return a.Name.Space == "" || a.Name.Space == xmlnsNamespace || a.Name.Space == xmlNS
}

func isWhitespace(b []byte) bool {
	return len(strings.TrimSpace(string(b))) == 0
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
