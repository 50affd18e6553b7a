package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(1944, time.February, 22, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"1944-02-22", "1944-02-22T00:00:00Z", "February 22, 1944", " 1944-02-22 "} {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), "%s parsed as %s", input, got)
	}

	offset, err := ParseDate("1944-02-22T02:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, offset.Location())
	assert.True(t, want.Equal(offset))

	_, err = ParseDate("22/02/1944")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestUserPatchEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	email := "a@b.com"
	assert.False(t, UserPatch{Email: &email}.Empty())
}
