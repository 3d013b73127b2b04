package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/models"
)

func testClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	apiURL = srv.URL + "/api/"
	timeout = "5s"
	c, err := newClient()
	require.NoError(t, err)
	return c
}

func TestClientSendsJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/contests/abc/result", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got models.ContestResult
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.ContestResult{HomeScore: 24, VisitorScore: 21}, got)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})

	var out map[string]string
	err := c.do(context.Background(), http.MethodPut, "/contests/abc/result", models.ContestResult{HomeScore: 24, VisitorScore: 21}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", out["id"])
}

func TestClientReturnsAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict","message":"username already taken"}`))
	})

	err := c.do(context.Background(), http.MethodPost, "/participants", map[string]string{"username": "ann"}, nil)
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "username already taken", apiErr.Message)
}

func TestClientRejectsBadTimeout(t *testing.T) {
	timeout = "soon"
	_, err := newClient()
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-09-04")
	require.NoError(t, err)
	assert.Equal(t, 4, d.Day())

	d, err = parseDay("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseDay("09/04/2025")
	assert.Error(t, err)
}
