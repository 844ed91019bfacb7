package hrsearch

import (
	"context"
	"net/http"

	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
)

// Health checks the health of all server components. A degraded or failing
// server is reported through Status, not as an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var resp gen.HealthResponse
	if _, err := c.do(ctx, call{
		op: "health", method: http.MethodGet, path: "/health",
	}, &resp); err != nil {
		return HealthStatus{}, err
	}
	checks := make(map[string]string, len(resp.Checks))
	for k, v := range resp.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{Status: string(resp.Status), Checks: checks}, nil
}
