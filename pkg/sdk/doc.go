// Package hrsearch is a Go client for the hrsearch employee ranking API.
//
//	client, _ := hrsearch.New("http://localhost:8080", hrsearch.WithAPIKey(key))
//	res, _ := client.Search(ctx, "senior python developer", 10)
//	for _, c := range res.Candidates {
//	    fmt.Println(c.FullName, c.Score)
//	}
//	if res.Degraded {
//	    // keyword fallback or no query vector; see res.Reason
//	}
//
// Profile vectors can be refreshed after an employee edit with RebuildProfile,
// dropped with DeleteProfile, or rebuilt for everyone with Reindex.
package hrsearch
