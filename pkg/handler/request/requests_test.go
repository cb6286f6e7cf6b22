package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAutocomplete(t *testing.T) {
	req, err := ParseAutocomplete(url.Values{"q": {"  bla "}}, 10)
	require.NoError(t, err)
	assert.Equal(t, AutocompleteRequest{Query: "bla", Limit: 10}, req)

	req, err = ParseAutocomplete(url.Values{"q": {"x"}, "limit": {"3"}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Limit)

	_, err = ParseAutocomplete(url.Values{"limit": {"many"}}, 10)
	assert.Error(t, err)

	_, err = ParseAutocomplete(url.Values{"limit": {"500"}}, 10)
	assert.Error(t, err)
}
