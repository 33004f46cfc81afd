package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWrapsEnvelope(t *testing.T) {
	h := NewHub()

	h.Publish(EventSaleRecorded, map[string]interface{}{"id": 7})

	msg := <-h.Broadcast
	var env struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.Equal(t, "sale_recorded", env.Type)
	assert.EqualValues(t, 7, env.Data["id"])
}

func TestPublishDoesNotBlockWhenQueueFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(EventCatalogUpdate, i)
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
	assert.Equal(t, 0, h.ClientCount())
}
