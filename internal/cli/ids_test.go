package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	ids := []string{"4f1c2a90-aaaa", "4f1d0000-bbbb", "9e000000-cccc"}

	got, err := resolveID("9e", ids)
	require.NoError(t, err)
	assert.Equal(t, "9e000000-cccc", got)

	got, err = resolveID("4f1d0000-bbbb", ids)
	require.NoError(t, err)
	assert.Equal(t, "4f1d0000-bbbb", got)

	_, err = resolveID("4f1", ids)
	assert.ErrorContains(t, err, "ambiguous")

	got, err = resolveID("missing", ids)
	require.NoError(t, err)
	assert.Equal(t, "missing", got)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "4f1c2a90", shortID("4f1c2a90-aaaa"))
	assert.Equal(t, "abc", shortID("abc"))
}
