package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Send(context.Background(), "ExponentPushToken[abc]", "New Order Received", "You have a new order!",
		map[string]any{"screen": "PendingOrders"})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", got.To)
	assert.Equal(t, "default", got.Sound)
	assert.Equal(t, "New Order Received", got.Title)
	assert.Equal(t, "You have a new order!", got.Body)
	assert.Equal(t, "PendingOrders", got.Data["screen"])
}

func TestSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Send(context.Background(), "bogus", "t", "b", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
