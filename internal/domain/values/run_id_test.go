package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewRunID(t *testing.T) {
	id1 := NewRunID()
	id2 := NewRunID()

	assert.False(t, id1.IsZero(), "new ID should not be zero")
	assert.False(t, id1.Equals(id2), "two new IDs should be different")
}

func Test_ParseRunID(t *testing.T) {
	validUUID := "123e4567-e89b-12d3-a456-426614174000"

	id, err := ParseRunID(validUUID)
	require.NoError(t, err)
	assert.Equal(t, validUUID, id.String())
	assert.Equal(t, validUUID, id.UUID().String())
}

func Test_ParseRunID_Invalid(t *testing.T) {
	for _, tt := range []string{"", "invalid", "123"} {
		t.Run(tt, func(t *testing.T) {
			_, err := ParseRunID(tt)
			assert.Error(t, err)
		})
	}
}

func Test_MustParseRunID_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseRunID("invalid")
	})
}

func Test_RunID_IsZero(t *testing.T) {
	var zero RunID
	assert.True(t, zero.IsZero())
}

func Test_RunID_JSON(t *testing.T) {
	original := MustParseRunID("123e4567-e89b-12d3-a456-426614174000")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"123e4567-e89b-12d3-a456-426614174000"`, string(data))

	var decoded RunID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}
