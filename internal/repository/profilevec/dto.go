package profilevec

import (
	"strconv"
	"time"

	"github.com/kailas-cloud/hrsearch/internal/db"
	"github.com/kailas-cloud/hrsearch/internal/domain/profile"
)

const (
	fieldVector    = "__vector"
	fieldSource    = "source_text"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

func toHash(v profile.Vector) map[string]string {
	return map[string]string{
		fieldVector:    string(db.EncodeVector(v.Embedding())),
		fieldSource:    v.SourceText(),
		fieldCreatedAt: strconv.FormatInt(v.CreatedAt().UnixMilli(), 10),
		fieldUpdatedAt: strconv.FormatInt(v.UpdatedAt().UnixMilli(), 10),
	}
}

// fromHash hydrates a vector. ok is false for an empty hash (key absent).
func fromHash(id int64, m map[string]string) (profile.Vector, bool, error) {
	if len(m) == 0 {
		return profile.Vector{}, false, nil
	}
	emb, err := db.DecodeVector([]byte(m[fieldVector]))
	if err != nil {
		return profile.Vector{}, false, err
	}
	return profile.Reconstruct(id, emb, m[fieldSource], millis(m[fieldCreatedAt]), millis(m[fieldUpdatedAt])), true, nil
}

func millis(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
