// Package ontology turns an RDF dump of the PanRes ontology into the
// class/individual cache the browser store is loaded from.
package ontology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ClassDetail struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Description   string   `json:"description"`
	SuperClasses  []string `json:"superClasses"`
	HasSubClasses bool     `json:"hasSubClasses"`
	HasInstances  bool     `json:"hasInstances"`
}

// PropertyValue is one asserted object of a property on an individual.
// Type is "uri" or "literal"; Datatype is only set for typed literals.
type PropertyValue struct {
	Type     string  `json:"type"`
	Value    string  `json:"value"`
	Datatype *string `json:"datatype,omitempty"`
}

type IndividualDetail struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Label       string                     `json:"label"`
	Description string                     `json:"description"`
	Types       []string                   `json:"types"`
	Properties  map[string][]PropertyValue `json:"properties"`
}

type RegistryEntry struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Cache is the preprocessed ontology. Maps are keyed by IRI.
type Cache struct {
	ClassDetails      map[string]*ClassDetail      `json:"classDetails"`
	IndividualDetails map[string]*IndividualDetail `json:"individualDetails"`
	SubClassMap       map[string][]string          `json:"subClassMap"`
	ClassInstanceMap  map[string][]string          `json:"classInstanceMap"`
	URIRegistry       map[string]RegistryEntry     `json:"uriRegistry"`
	TopClasses        []string                     `json:"topClasses"`
}

func NewCache() *Cache {
	return &Cache{
		ClassDetails:      make(map[string]*ClassDetail),
		IndividualDetails: make(map[string]*IndividualDetail),
		SubClassMap:       make(map[string][]string),
		ClassInstanceMap:  make(map[string][]string),
		URIRegistry:       make(map[string]RegistryEntry),
		TopClasses:        []string{},
	}
}

// ReadCache decodes a JSON cache and fills in any missing maps.
func ReadCache(r io.Reader) (*Cache, error) {
	c := NewCache()
	if err := json.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("decoding ontology cache: %w", err)
	}
	if c.ClassDetails == nil {
		c.ClassDetails = make(map[string]*ClassDetail)
	}
	if c.IndividualDetails == nil {
		c.IndividualDetails = make(map[string]*IndividualDetail)
	}
	if c.URIRegistry == nil {
		c.URIRegistry = make(map[string]RegistryEntry)
	}
	for id, cls := range c.ClassDetails {
		if cls.ID == "" {
			cls.ID = id
		}
		if cls.Label == "" {
			cls.Label = LocalName(id)
		}
	}
	for id, ind := range c.IndividualDetails {
		if ind.ID == "" {
			ind.ID = id
		}
		if ind.Label == "" {
			ind.Label = LocalName(id)
		}
	}
	return c, nil
}

func ReadCacheFile(path string) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCache(f)
}

// WriteCache encodes the cache as compact JSON.
func (c *Cache) WriteCache(w io.Writer) error {
	return json.NewEncoder(w).Encode(c)
}
