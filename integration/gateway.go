// Package integration is the client side of the system-integration
// gateway: it fetches raw business data from the upstream modules (POS,
// purchasing, inventory, HR, marketing) over HTTP.
package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// QueryParams are the date-range parameters every upstream endpoint
// accepts, formatted as YYYY-MM-DD.
type QueryParams struct {
	StartDate string
	EndDate   string
}

// Gateway calls an upstream module endpoint and returns the raw JSON
// payload. Implementations own timeouts and retries; callers treat any
// error as a per-source fetch failure.
type Gateway interface {
	Call(ctx context.Context, module, endpoint string, params QueryParams) ([]byte, error)
}

// HTTPGateway talks to the integration service that fronts the upstream
// modules. URLs take the form {base}/{module}{endpoint}?startDate=&endDate=.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway for the given integration base URL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Call performs the upstream request and returns the response body.
func (g *HTTPGateway) Call(ctx context.Context, module, endpoint string, params QueryParams) ([]byte, error) {
	q := url.Values{}
	q.Set("startDate", params.StartDate)
	q.Set("endDate", params.EndDate)
	reqURL := fmt.Sprintf("%s/%s%s?%s", g.baseURL, module, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s%s: %w", module, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s%s: %w", module, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s%s response: %w", module, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream %s%s returned status %d", module, endpoint, resp.StatusCode)
	}
	return body, nil
}
