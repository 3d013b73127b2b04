package sqlutil

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullUUIDRoundTrip(t *testing.T) {
	assert.False(t, ToNullUUID(nil).Valid)
	assert.Nil(t, FromNullUUID(uuid.NullUUID{}))

	id := uuid.New()
	got := FromNullUUID(ToNullUUID(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestToNullRawMessage(t *testing.T) {
	msg, err := ToNullRawMessage(nil)
	require.NoError(t, err)
	assert.False(t, msg.Valid)

	msg, err = ToNullRawMessage(map[string]int{"level": 1})
	require.NoError(t, err)
	assert.True(t, msg.Valid)
	assert.JSONEq(t, `{"level":1}`, string(msg.RawMessage))

	msg, err = ToNullRawMessage(json.RawMessage(`{"a":true}`))
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"a":true}`), FromNullRawMessage(msg))

	_, err = ToNullRawMessage(make(chan int))
	assert.Error(t, err)
}
