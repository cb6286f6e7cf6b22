package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AutocompleteRequest is the query of /autocomplete and /search.
type AutocompleteRequest struct {
	Query string `validate:"max=200"`
	Limit int    `validate:"min=1,max=100"`
}

var validate = validator.New()

// ParseAutocomplete reads q and limit. A missing limit takes defaultLimit.
func ParseAutocomplete(values url.Values, defaultLimit int) (AutocompleteRequest, error) {
	req := AutocompleteRequest{
		Query: strings.TrimSpace(values.Get("q")),
		Limit: defaultLimit,
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("limit must be a number")
		}
		req.Limit = n
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid autocomplete request: %w", err)
	}
	return req, nil
}
