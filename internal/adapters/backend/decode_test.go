package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_UnwrapsEnvelopeAndBareArray(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"paginated envelope", `{"data":[{"id":1},{"id":2}],"meta":{"page":1}}`},
		{"bare array", `[{"id":1},{"id":2}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := Listing(&Response{Status: 200, Body: []byte(tc.body)})
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.JSONEq(t, `{"id":1}`, string(items[0]))
			assert.JSONEq(t, `{"id":2}`, string(items[1]))
		})
	}
}

func TestListing_EmptyShapes(t *testing.T) {
	for _, body := range []string{"", `{"data":[]}`, `[]`, `{"message":"ok"}`} {
		items, err := Listing(&Response{Status: 200, Body: []byte(body)})
		require.NoError(t, err, "body %q", body)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestListing_UnparsableBodyIsDecodeError(t *testing.T) {
	_, err := Listing(&Response{Status: 200, Body: []byte("<html>surprise</html>"), URL: "http://backend/products"})
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.True(t, be.DecodeFailure())
	assert.Equal(t, 502, be.Status)
	assert.Equal(t, "http://backend/products", be.URL)
	assert.Contains(t, be.Snippet, "surprise")
}

func TestSingle_PassthroughAndValidation(t *testing.T) {
	raw, err := Single(&Response{Status: 200, Body: []byte(`  {"id":9,"total":"12.50"} `)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9,"total":"12.50"}`, string(raw))

	raw, err = Single(&Response{Status: 204, Body: nil})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), raw)

	_, err = Single(&Response{Status: 200, Body: []byte("not json")})
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.True(t, be.DecodeFailure())
}

func TestStripMarkup_PlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "plain text stays", stripMarkup("plain \n text\tstays"))
}
