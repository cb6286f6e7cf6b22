package ontology

import "strings"

// Namespaces whose terms are schema vocabulary, never browsable nodes.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

const (
	RDFType         = RDF + "type"
	RDFSLabel       = RDFS + "label"
	RDFSComment     = RDFS + "comment"
	RDFSSubClassOf  = RDFS + "subClassOf"
	OWLClass        = OWL + "Class"
	OWLThing        = OWL + "Thing"
	OWLNamedIndiv   = OWL + "NamedIndividual"
	OWLObjectProp   = OWL + "ObjectProperty"
	OWLDatatypeProp = OWL + "DatatypeProperty"
	OWLAnnotProp    = OWL + "AnnotationProperty"
)

// BaseIRI is the PanRes ontology namespace.
const BaseIRI = "http://myonto.com/PanResOntology.owl#"

// Registry entry kinds as they appear on the wire.
const (
	KindClass      = "class"
	KindIndividual = "individual"
	KindProperty   = "property"
)

func isSchemaTerm(iri string) bool {
	return strings.HasPrefix(iri, RDF) ||
		strings.HasPrefix(iri, RDFS) ||
		strings.HasPrefix(iri, OWL) ||
		strings.HasPrefix(iri, XSD)
}

// LocalName returns the fragment after the last '#', else the last path
// segment, else the iri itself.
func LocalName(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}
