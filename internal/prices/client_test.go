package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("default base URL", func(t *testing.T) {
		client := NewClient("")
		assert.Equal(t, DefaultBaseURL, client.baseURL)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client := NewClient("https://example.com/api/")
		assert.Equal(t, "https://example.com/api", client.baseURL)
	})
}

func TestClient_FetchMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/mapping", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "gepulse")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 560, "name": "Death rune", "examine": "Used for high level missile spells.", "members": false, "limit": 25000, "highalch": 108, "icon": "Death rune.png"},
			{"id": 4151, "name": "Abyssal whip", "examine": "A weapon from the abyss.", "members": true, "limit": 70, "highalch": 72000, "icon": "Abyssal whip.png"},
			{"id": 0, "name": "Bogus entry"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.FetchMapping(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "malformed entries should be dropped")

	assert.Equal(t, int64(560), items[0].ID)
	assert.Equal(t, "Death rune", items[0].Name)
	assert.Equal(t, int64(25000), items[0].BuyLimit)
	assert.Equal(t, int64(108), items[0].HighAlch)
	assert.False(t, items[0].Members)

	assert.Equal(t, "Abyssal whip", items[1].Name)
	assert.True(t, items[1].Members)
}

func TestClient_FetchMapping_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down for maintenance"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchMapping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prices API error: 503")
	assert.Contains(t, err.Error(), "down for maintenance")
}

func TestClient_FetchMapping_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchMapping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
