// Package testutil holds a small PanRes ontology shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/yumyai/panres/pkg/db"
	"github.com/yumyai/panres/pkg/ontology"
)

const NS = ontology.BaseIRI

// Frequently referenced ids.
const (
	Gene             = NS + "Gene"
	PanGene          = NS + "PanGene"
	OriginalGene     = NS + "OriginalGene"
	ResistanceType   = NS + "ResistanceType"
	AntibioticClass  = NS + "AntibioticResistanceClass"
	Aminoglycoside   = NS + "Aminoglycoside"
	BetaLactam       = NS + "BetaLactam"
	Database         = NS + "Database"
	Unclassified     = NS + "Unclassified"
	Pan1             = NS + "pan_1"
	Pan2             = NS + "pan_2"
	Orig1            = NS + "orig_1"
	CARD             = NS + "card"
	ResFinder        = NS + "resfinder"
	HasResClass      = NS + "has_resistance_class"
	IsFromDatabase   = NS + "is_from_database"
	HasLength        = NS + "has_length"
	Accession        = NS + "accession"
	SameAs           = NS + "same_as"
	CardLink         = NS + "card_link"
	CardLinkTarget   = "https://card.mcmaster.ca/ontology/36009"
	XSDInteger       = ontology.XSD + "integer"
)

func cls(id, label, desc string, supers ...string) *ontology.ClassDetail {
	if supers == nil {
		supers = []string{}
	}
	return &ontology.ClassDetail{
		ID:           id,
		Name:         ontology.LocalName(id),
		Label:        label,
		Description:  desc,
		SuperClasses: supers,
	}
}

func uri(v string) ontology.PropertyValue {
	return ontology.PropertyValue{Type: "uri", Value: v}
}

func literal(v string, datatype string) ontology.PropertyValue {
	pv := ontology.PropertyValue{Type: "literal", Value: v}
	if datatype != "" {
		pv.Datatype = &datatype
	}
	return pv
}

// SampleCache is a hand-built slice of the PanRes ontology.
func SampleCache() *ontology.Cache {
	c := ontology.NewCache()

	for _, cd := range []*ontology.ClassDetail{
		cls(Gene, "Gene", "A gene sequence"),
		cls(PanGene, "Pan gene", "Representative gene of a PanRes cluster", Gene),
		cls(OriginalGene, "Original gene", "", Gene),
		cls(ResistanceType, "Resistance type", ""),
		cls(AntibioticClass, "Antibiotic resistance class", "", ResistanceType),
		cls(Aminoglycoside, "Aminoglycoside", "", AntibioticClass),
		cls(BetaLactam, "Beta-lactam", "", AntibioticClass),
		cls(Database, "Database", "Source database"),
		cls(Unclassified, "Unclassified", ""),
	} {
		c.ClassDetails[cd.ID] = cd
		c.URIRegistry[cd.ID] = ontology.RegistryEntry{Type: ontology.KindClass, Label: cd.Label}
	}
	c.TopClasses = []string{Gene, ResistanceType, Database, Unclassified}
	c.SubClassMap = map[string][]string{
		Gene:            {PanGene, OriginalGene},
		ResistanceType:  {AntibioticClass},
		AntibioticClass: {Aminoglycoside, BetaLactam},
	}

	c.IndividualDetails[Pan1] = &ontology.IndividualDetail{
		ID: Pan1, Name: "pan_1", Label: "blaTEM-1", Description: "Class A beta-lactamase",
		Types: []string{PanGene},
		Properties: map[string][]ontology.PropertyValue{
			HasResClass:    {uri(BetaLactam)},
			IsFromDatabase: {uri(ResFinder), uri(CARD)},
			HasLength:      {literal("861", XSDInteger)},
			Accession:      {literal("AY458016", "")},
			SameAs:         {uri(Orig1)},
			CardLink:       {uri(CardLinkTarget)},
		},
	}
	c.IndividualDetails[Pan2] = &ontology.IndividualDetail{
		ID: Pan2, Name: "pan_2", Label: "aac(6')-Ib",
		Types: []string{PanGene},
		Properties: map[string][]ontology.PropertyValue{
			HasResClass: {uri(Aminoglycoside)},
		},
	}
	c.IndividualDetails[Orig1] = &ontology.IndividualDetail{
		ID: Orig1, Name: "orig_1", Label: "blaTEM-1_1_AY458016",
		Types:      []string{OriginalGene},
		Properties: map[string][]ontology.PropertyValue{},
	}
	c.IndividualDetails[CARD] = &ontology.IndividualDetail{
		ID: CARD, Name: "card", Label: "CARD", Types: []string{Database},
		Properties: map[string][]ontology.PropertyValue{},
	}
	c.IndividualDetails[ResFinder] = &ontology.IndividualDetail{
		ID: ResFinder, Name: "resfinder", Label: "ResFinder", Types: []string{Database},
		Properties: map[string][]ontology.PropertyValue{},
	}
	for id, ind := range c.IndividualDetails {
		c.URIRegistry[id] = ontology.RegistryEntry{Type: ontology.KindIndividual, Label: ind.Label}
		for _, typ := range ind.Types {
			c.ClassInstanceMap[typ] = append(c.ClassInstanceMap[typ], id)
		}
	}

	for id, label := range map[string]string{
		HasResClass:    "has resistance class",
		IsFromDatabase: "is from database",
		HasLength:      "has length",
		Accession:      "accession",
		SameAs:         "same as",
		CardLink:       "card link",
	} {
		c.URIRegistry[id] = ontology.RegistryEntry{Type: ontology.KindProperty, Label: label}
	}

	for id, cd := range c.ClassDetails {
		cd.HasSubClasses = len(c.SubClassMap[id]) > 0
		cd.HasInstances = len(c.ClassInstanceMap[id]) > 0
	}
	return c
}

// OpenSeeded returns an in-memory store loaded with SampleCache.
func OpenSeeded(t testing.TB) *db.OntoDB {
	t.Helper()
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.Import(context.Background(), SampleCache()); err != nil {
		t.Fatalf("import sample: %v", err)
	}
	return store
}
