package hrsearch

import (
	"context"
	"net/http"
	"net/url"

	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
)

// Usage returns embedding token consumption for the given period.
// An empty period means the current month.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) (UsageReport, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", string(period))
	}

	var resp gen.UsageResponse
	if _, err := c.do(ctx, call{
		op: "usage", method: http.MethodGet, path: "/usage", query: q, idempotent: true,
	}, &resp); err != nil {
		return UsageReport{}, err
	}
	return UsageReport{
		Period:          UsagePeriod(resp.Period),
		PeriodStart:     resp.PeriodStartAt,
		PeriodEnd:       resp.PeriodEndAt,
		TokensUsed:      resp.TokensUsed,
		TokensLimit:     resp.TokensLimit,
		TokensRemaining: resp.TokensRemaining,
		IsExhausted:     resp.IsExhausted,
	}, nil
}
