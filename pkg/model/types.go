package model

import (
	"encoding/json"
	"fmt"
)

// Detail kinds carried in DetailsResponse.Type.
const (
	KindClass      = "class"
	KindIndividual = "individual"
	KindProperty   = "property"
)

type ClassSummary struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	HasSubClasses bool   `json:"hasSubClasses"`
	HasInstances  bool   `json:"hasInstances"`
}

type InstanceSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RegistryInfo is one uriRegistry entry. Empty fields mean "not known".
type RegistryInfo struct {
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
}

type HierarchyResponse struct {
	TopClasses  []ClassSummary          `json:"topClasses"`
	URIRegistry map[string]RegistryInfo `json:"uriRegistry"`
}

type ChildrenResponse struct {
	SubClasses []ClassSummary    `json:"subClasses"`
	Instances  []InstanceSummary `json:"instances"`
}

type ClassDetails struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Description  string   `json:"description,omitempty"`
	SuperClasses []string `json:"superClasses"`
	SubClasses   []string `json:"subClasses"`
	Instances    []string `json:"instances"`
}

type PropertyValue struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
}

type IndividualDetails struct {
	ID          string                     `json:"id"`
	Label       string                     `json:"label"`
	Description string                     `json:"description,omitempty"`
	Types       []string                   `json:"types"`
	Properties  map[string][]PropertyValue `json:"properties"`
}

// BasicDetails is the part every detail record shares. Properties and
// unrecognised kinds only carry this much.
type BasicDetails struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// DetailsResponse is the /api/details payload. Details stays raw until the
// caller knows which shape Type announces.
type DetailsResponse struct {
	Type              string                  `json:"type"`
	Details           json.RawMessage         `json:"details"`
	URIRegistryUpdate map[string]RegistryInfo `json:"uriRegistryUpdate,omitempty"`
}

func NewDetailsResponse(kind string, details any, update map[string]RegistryInfo) (*DetailsResponse, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encoding %s details: %w", kind, err)
	}
	return &DetailsResponse{Type: kind, Details: raw, URIRegistryUpdate: update}, nil
}

func (d *DetailsResponse) Class() (*ClassDetails, error) {
	var c ClassDetails
	if err := json.Unmarshal(d.Details, &c); err != nil {
		return nil, fmt.Errorf("decoding class details: %w", err)
	}
	return &c, nil
}

func (d *DetailsResponse) Individual() (*IndividualDetails, error) {
	var ind IndividualDetails
	if err := json.Unmarshal(d.Details, &ind); err != nil {
		return nil, fmt.Errorf("decoding individual details: %w", err)
	}
	return &ind, nil
}

func (d *DetailsResponse) Basic() (*BasicDetails, error) {
	var b BasicDetails
	if len(d.Details) == 0 {
		return &b, nil
	}
	if err := json.Unmarshal(d.Details, &b); err != nil {
		return nil, fmt.Errorf("decoding details: %w", err)
	}
	return &b, nil
}

type AutocompleteItem struct {
	DisplayName   string `json:"display_name"`
	Link          string `json:"link"`
	TypeIndicator string `json:"type_indicator"`
}

// ErrorResponse is the body of every non-2xx API answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
