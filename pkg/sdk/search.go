package hrsearch

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
)

// MaxResults is the largest page the service returns.
const MaxResults = 20

// Search ranks employees for a free-text hiring query. limit 0 uses the
// server default; values above MaxResults are rejected by the server.
// A degraded answer is still a successful call: inspect Mode and Reason.
func (c *Client) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	if query == "" {
		return SearchResult{}, errors.New("hrsearch: query is required")
	}
	q := url.Values{"query": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp gen.SearchResponse
	hdr, err := c.do(ctx, call{
		op: "search", method: http.MethodGet, path: "/search", query: q, idempotent: true,
	}, &resp)
	if err != nil {
		return SearchResult{}, err
	}

	res := fromSearchResponse(&resp)
	res.EmbeddingTokens, _ = strconv.Atoi(hdr.Get("X-Embedding-Tokens"))
	res.CompletionTokens, _ = strconv.Atoi(hdr.Get("X-Completion-Tokens"))
	return res, nil
}

func fromSearchResponse(resp *gen.SearchResponse) SearchResult {
	res := SearchResult{
		SearchID:   resp.SearchId,
		Mode:       Mode(resp.Mode),
		Degraded:   resp.Degraded,
		Candidates: make([]Candidate, len(resp.Results)),
	}
	if resp.Reason != nil {
		res.Reason = *resp.Reason
	}
	if p := resp.Parsed; p != nil {
		res.Parsed = &ParsedQuery{
			Skills:          p.Skills,
			Grade:           string(p.Grade),
			NormalizedQuery: p.NormalizedQuery,
		}
	}
	for i := range resp.Results {
		r := &resp.Results[i]
		c := Candidate{
			ID:              r.Id,
			FullName:        r.FullName,
			Position:        r.Position,
			Department:      r.Department,
			ExperienceYears: r.ExperienceYears,
			Skills:          r.Skills,
			Level:           r.Level,
			XPPoints:        r.XpPoints,
			Score:           r.RelevanceScore,
			SemanticScore:   r.SemanticScore,
			SkillsMatch:     r.SkillsMatch,
		}
		if r.GradeScore != nil && r.OchiaiScore != nil && r.LevelBonus != nil {
			c.Components = &ScoreComponents{
				Grade:      *r.GradeScore,
				Overlap:    *r.OchiaiScore,
				Reputation: *r.LevelBonus,
			}
		}
		res.Candidates[i] = c
	}
	return res
}
