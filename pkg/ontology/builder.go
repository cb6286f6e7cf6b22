package ontology

import (
	"io"
	"sort"
)

type predicateObject struct {
	predicate string
	object    Term
}

// graph is the subject-indexed view of a triple set that Build works on.
type graph struct {
	types      map[string][]string
	labels     map[string]string
	comments   map[string]string
	superOf    map[string][]string
	subjectsPO map[string][]predicateObject
	classes    map[string]struct{}
	declProps  map[string]struct{}
}

func indexTriples(triples []Triple) *graph {
	g := &graph{
		types:      make(map[string][]string),
		labels:     make(map[string]string),
		comments:   make(map[string]string),
		superOf:    make(map[string][]string),
		subjectsPO: make(map[string][]predicateObject),
		classes:    make(map[string]struct{}),
		declProps:  make(map[string]struct{}),
	}

	for _, t := range triples {
		if t.Subject.Kind != TermIRI {
			continue // blank nodes are restrictions and anonymous classes
		}
		s, p, o := t.Subject.Value, t.Predicate.Value, t.Object

		switch p {
		case RDFType:
			if o.Kind == TermIRI {
				g.types[s] = append(g.types[s], o.Value)
				switch o.Value {
				case OWLClass:
					g.classes[s] = struct{}{}
				case OWLObjectProp, OWLDatatypeProp, OWLAnnotProp:
					g.declProps[s] = struct{}{}
				}
			}
		case RDFSLabel:
			if o.Kind == TermLiteral {
				if _, seen := g.labels[s]; !seen || o.Lang == "en" {
					g.labels[s] = o.Value
				}
			}
		case RDFSComment:
			if o.Kind == TermLiteral {
				if _, seen := g.comments[s]; !seen {
					g.comments[s] = o.Value
				}
			}
		case RDFSSubClassOf:
			g.classes[s] = struct{}{}
			if o.Kind == TermIRI {
				g.classes[o.Value] = struct{}{}
				g.superOf[s] = append(g.superOf[s], o.Value)
			}
		}
		g.subjectsPO[s] = append(g.subjectsPO[s], predicateObject{predicate: p, object: o})
	}
	return g
}

func (g *graph) label(iri string) string {
	if l, ok := g.labels[iri]; ok && l != "" {
		return l
	}
	return LocalName(iri)
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build derives the browsing cache from a parsed ontology.
func Build(triples []Triple) *Cache {
	g := indexTriples(triples)
	c := NewCache()

	// Classes
	for _, id := range sortedKeys(g.classes) {
		if isSchemaTerm(id) || id == OWLThing {
			continue
		}
		cls := &ClassDetail{
			ID:           id,
			Name:         LocalName(id),
			Label:        g.label(id),
			Description:  g.comments[id],
			SuperClasses: []string{},
		}
		for _, super := range g.superOf[id] {
			if super == OWLThing || super == id {
				continue
			}
			cls.SuperClasses = appendUnique(cls.SuperClasses, super)
			c.SubClassMap[super] = appendUnique(c.SubClassMap[super], id)
		}
		c.ClassDetails[id] = cls
		c.URIRegistry[id] = RegistryEntry{Type: KindClass, Label: cls.Label}
	}

	for _, id := range sortedKeys(c.ClassDetails) {
		top := true
		for _, super := range c.ClassDetails[id].SuperClasses {
			if _, known := c.ClassDetails[super]; known {
				top = false
				break
			}
		}
		if top {
			c.TopClasses = append(c.TopClasses, id)
		}
	}

	// Individuals
	individuals := make(map[string]struct{})
	for subject, types := range g.types {
		for _, typ := range types {
			_, knownClass := c.ClassDetails[typ]
			if typ == OWLNamedIndiv || knownClass {
				individuals[subject] = struct{}{}
				break
			}
		}
	}

	for _, id := range sortedKeys(individuals) {
		ind := &IndividualDetail{
			ID:          id,
			Name:        LocalName(id),
			Label:       g.label(id),
			Description: g.comments[id],
			Types:       []string{},
			Properties:  make(map[string][]PropertyValue),
		}
		for _, typ := range g.types[id] {
			if _, known := c.ClassDetails[typ]; !known {
				continue
			}
			ind.Types = appendUnique(ind.Types, typ)
			c.ClassInstanceMap[typ] = appendUnique(c.ClassInstanceMap[typ], id)
		}

		for _, po := range g.subjectsPO[id] {
			if isSchemaTerm(po.predicate) {
				continue
			}
			var v PropertyValue
			switch po.object.Kind {
			case TermIRI:
				v = PropertyValue{Type: "uri", Value: po.object.Value}
			case TermLiteral:
				v = PropertyValue{Type: "literal", Value: po.object.Value}
				if po.object.Datatype != "" {
					dt := po.object.Datatype
					v.Datatype = &dt
				}
			default:
				continue
			}
			ind.Properties[po.predicate] = append(ind.Properties[po.predicate], v)
			if _, seen := c.URIRegistry[po.predicate]; !seen {
				c.URIRegistry[po.predicate] = RegistryEntry{Type: KindProperty, Label: g.label(po.predicate)}
			}
		}

		c.IndividualDetails[id] = ind
		c.URIRegistry[id] = RegistryEntry{Type: KindIndividual, Label: ind.Label}
	}

	// Declared but unused properties still get a label for cross-links.
	for prop := range g.declProps {
		if isSchemaTerm(prop) {
			continue
		}
		if _, seen := c.URIRegistry[prop]; !seen {
			c.URIRegistry[prop] = RegistryEntry{Type: KindProperty, Label: g.label(prop)}
		}
	}

	for id, cls := range c.ClassDetails {
		cls.HasSubClasses = len(c.SubClassMap[id]) > 0
		cls.HasInstances = len(c.ClassInstanceMap[id]) > 0
	}
	for k := range c.SubClassMap {
		sort.Strings(c.SubClassMap[k])
	}
	for k := range c.ClassInstanceMap {
		sort.Strings(c.ClassInstanceMap[k])
	}
	return c
}

// BuildFrom parses r in format f and builds the cache.
func BuildFrom(r io.Reader, f Format) (*Cache, error) {
	triples, err := ReadTriples(r, f)
	if err != nil {
		return nil, err
	}
	return Build(triples), nil
}
