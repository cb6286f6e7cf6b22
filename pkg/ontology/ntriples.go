package ontology

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

type TermKind int

const (
	TermIRI TermKind = iota
	TermBlank
	TermLiteral
)

// Term is one position of a triple. Datatype and Lang only apply to literals.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

const (
	xsdString     = XSD + "string"
	rdfLangString = RDF + "langString"
)

// literal drops the implicit string datatypes so plain and tagged
// literals carry no datatype whatever syntax they came from.
func literal(value, datatype, lang string) Term {
	if datatype == xsdString || datatype == rdfLangString {
		datatype = ""
	}
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype, Lang: lang}
}

func fromGonum(t rdf.Term) (Term, error) {
	text, qual, kind, err := t.Parts()
	if err != nil {
		return Term{}, err
	}
	switch kind {
	case rdf.IRI:
		return Term{Kind: TermIRI, Value: text}, nil
	case rdf.Blank:
		return Term{Kind: TermBlank, Value: strings.TrimPrefix(text, "_:")}, nil
	case rdf.Literal:
		// qual is either a datatype IRI or a language tag
		if strings.Contains(qual, ":") {
			return literal(text, qual, ""), nil
		}
		return literal(text, "", strings.TrimPrefix(qual, "@")), nil
	}
	return Term{}, fmt.Errorf("invalid term %q", t.Value)
}

// ReadNTriples reads every triple of an N-Triples document. Graph labels
// of N-Quads input are ignored.
func ReadNTriples(r io.Reader) ([]Triple, error) {
	dec := rdf.NewDecoder(r)
	var out []Triple
	for {
		s, err := dec.Unmarshal()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading ntriples statement %d: %w", len(out)+1, err)
		}

		var t Triple
		if t.Subject, err = fromGonum(s.Subject); err == nil {
			if t.Predicate, err = fromGonum(s.Predicate); err == nil {
				t.Object, err = fromGonum(s.Object)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("reading ntriples statement %d: %w", len(out)+1, err)
		}
		out = append(out, t)
	}
}
