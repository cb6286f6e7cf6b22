package ontology

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"
)

// Format is an ontology serialization the importer reads.
type Format string

const (
	FormatNTriples Format = "nt"
	FormatRDFXML   Format = "owl"
	FormatTurtle   Format = "ttl"
)

// ParseFormat maps a format name or file extension onto a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "nt", "ntriples", "nq":
		return FormatNTriples, nil
	case "owl", "rdf", "xml", "rdfxml":
		return FormatRDFXML, nil
	case "ttl", "turtle":
		return FormatTurtle, nil
	}
	return "", fmt.Errorf("unknown ontology format %q", name)
}

func fromKnakk(t rdf.Term) Term {
	switch t.Type() {
	case rdf.TermBlank:
		return Term{Kind: TermBlank, Value: strings.TrimPrefix(t.String(), "_:")}
	case rdf.TermLiteral:
		lit := t.(rdf.Literal)
		return literal(lit.String(), lit.DataType.String(), lit.Lang())
	}
	return Term{Kind: TermIRI, Value: t.String()}
}

func readKnakk(r io.Reader, f rdf.Format) ([]Triple, error) {
	dec := rdf.NewTripleDecoder(r, f)
	var out []Triple
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading triple %d: %w", len(out)+1, err)
		}
		out = append(out, Triple{
			Subject:   fromKnakk(t.Subj),
			Predicate: fromKnakk(t.Pred),
			Object:    fromKnakk(t.Obj),
		})
	}
}

// ReadTriples reads a whole document in the given format.
func ReadTriples(r io.Reader, f Format) ([]Triple, error) {
	switch f {
	case FormatNTriples:
		return ReadNTriples(r)
	case FormatRDFXML:
		return readKnakk(r, rdf.RDFXML)
	case FormatTurtle:
		return readKnakk(r, rdf.Turtle)
	}
	return nil, fmt.Errorf("unknown ontology format %q", f)
}
