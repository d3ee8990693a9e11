package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddresses(t *testing.T) {
	raw := `[{"address_index":0,"encoded_address":"utest1abc","receivers":{"orchard":true}},"utest1bare",{"address":"utest1legacy"}]`

	a, err := ParseAddresses([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []string{"utest1abc", "utest1bare", "utest1legacy"}, a.Encoded())
}

func TestParseAddresses_Empty(t *testing.T) {
	for _, raw := range []string{"", "  ", "[]"} {
		a, err := ParseAddresses([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, 0, a.Len())
		assert.Empty(t, a.Encoded())
		assert.Equal(t, "[]", a.Pretty())
	}
}

func TestParseAddresses_RejectsNonArray(t *testing.T) {
	for _, raw := range []string{`{"address":"x"}`, `not json`, `[1,`} {
		_, err := ParseAddresses([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidAddresses, raw)
	}
}

func TestAddresses_PrettyIndentsObjects(t *testing.T) {
	a, err := ParseAddresses([]byte(`[{"encoded_address":"utest1abc","has_orchard":true}]`))
	require.NoError(t, err)

	out := a.Pretty()
	assert.Contains(t, out, "\n  {")
	assert.Contains(t, out, `"encoded_address": "utest1abc"`)
}

func TestAddresses_ZeroValue(t *testing.T) {
	var a Addresses
	assert.Equal(t, "[]", string(a.Raw()))
	assert.Equal(t, 0, a.Len())
}
