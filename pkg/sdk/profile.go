package hrsearch

import (
	"context"
	"net/http"
	"strconv"

	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
)

func profilePath(id int64) string {
	return "/employees/" + strconv.FormatInt(id, 10) + "/profile-vector"
}

// RebuildProfile re-embeds one employee's profile. Returns ErrNotFound for an
// unknown employee; a provider failure is reported as Status "failed".
func (c *Client) RebuildProfile(ctx context.Context, employeeID int64) (RebuildResult, error) {
	var resp gen.RebuildResponse
	if _, err := c.do(ctx, call{
		op: "rebuild", method: http.MethodPost, path: profilePath(employeeID), idempotent: true,
	}, &resp); err != nil {
		return RebuildResult{}, err
	}
	return RebuildResult{EmployeeID: resp.EmployeeId, Status: string(resp.Status)}, nil
}

// DeleteProfile drops one employee's cached profile vector.
func (c *Client) DeleteProfile(ctx context.Context, employeeID int64) error {
	_, err := c.do(ctx, call{
		op: "delete", method: http.MethodDelete, path: profilePath(employeeID), idempotent: true,
	}, nil)
	return err
}

// Reindex rebuilds every rankable employee's profile vector. It is not
// retried: a timed-out reindex may still be running on the server.
func (c *Client) Reindex(ctx context.Context) (ReindexStats, error) {
	var resp gen.ReindexResponse
	if _, err := c.do(ctx, call{
		op: "reindex", method: http.MethodPost, path: "/profile-vectors/reindex",
	}, &resp); err != nil {
		return ReindexStats{}, err
	}
	return ReindexStats{Rebuilt: resp.Rebuilt, Skipped: resp.Skipped, Failed: resp.Failed}, nil
}
