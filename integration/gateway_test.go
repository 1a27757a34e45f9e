package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPGatewayCall(t *testing.T) {
	var gotPath, gotStart, gotEnd string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("startDate")
		gotEnd = r.URL.Query().Get("endDate")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[]}`))
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL + "/")
	raw, err := gw.Call(context.Background(), "pos", "/sales/transactions", QueryParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-10",
	})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[]}`, string(raw))
	assert.Equal(t, "/pos/sales/transactions", gotPath)
	assert.Equal(t, "2025-03-01", gotStart)
	assert.Equal(t, "2025-03-10", gotEnd)
}

func TestHTTPGatewayUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL)
	_, err := gw.Call(context.Background(), "hr", "/shifts", QueryParams{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPGatewayConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // -> connection refused

	gw := NewHTTPGateway(server.URL)
	_, err := gw.Call(context.Background(), "pos", "/sales/transactions", QueryParams{})
	assert.Error(t, err)
}
