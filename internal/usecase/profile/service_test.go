package profile

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/profile"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
	"github.com/kailas-cloud/hrsearch/internal/textnorm"
)

func TestMain(m *testing.M) {
	metrics.RegisterRankingMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type memVectors struct {
	mu         sync.Mutex
	data       map[int64]profile.Vector
	getManyErr error
	upserts    int
}

func newMemVectors() *memVectors { return &memVectors{data: map[int64]profile.Vector{}} }

func (m *memVectors) Get(_ context.Context, id int64) (profile.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[id]
	if !ok {
		return profile.Vector{}, domain.ErrProfileVectorNotFound
	}
	return v, nil
}

func (m *memVectors) GetMany(_ context.Context, ids []int64) (map[int64]profile.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getManyErr != nil {
		return nil, m.getManyErr
	}
	out := make(map[int64]profile.Vector)
	for _, id := range ids {
		if v, ok := m.data[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (m *memVectors) Upsert(_ context.Context, v profile.Vector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.data[v.EmployeeID()] = v
	return nil
}

func (m *memVectors) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
	fail  map[string]bool
}

func (c *countingEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail[text] {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
	}
	return domain.EmbeddingResult{Embedding: []float32{float32(len(text)), 1}, TotalTokens: 10}, nil
}

func (c *countingEmbedder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type stubEmployees struct {
	byID map[int64]employee.Employee
	list []employee.Employee
	err  error
}

func (s *stubEmployees) ByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := s.byID[id]
	if !ok {
		return employee.Employee{}, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *stubEmployees) ListRankable(context.Context) ([]employee.Employee, error) {
	return s.list, s.err
}

func emp(id int64, position string, skills ...string) employee.Employee {
	e := employee.Employee{
		ID: id, FirstName: "Ivan", LastName: "Petrov",
		Position: position, Bio: "Experienced engineer", ExperienceYears: 3,
	}
	for _, s := range skills {
		e.Skills = append(e.Skills, employee.Skill{Name: s})
	}
	return e
}

func newService(v *memVectors, emb *countingEmbedder, src *stubEmployees) *Service {
	if src == nil {
		src = &stubEmployees{}
	}
	return New(v, src, emb, textnorm.New(), nil, 2, zap.NewNop())
}

// --- Tests ---

func TestResolve_SecondCallUsesCache(t *testing.T) {
	v := newMemVectors()
	emb := &countingEmbedder{}
	svc := newService(v, emb, nil)
	emps := []employee.Employee{emp(1, "Backend developer", "Go"), emp(2, "Data scientist", "Python")}

	first := svc.Resolve(context.Background(), emps)
	if emb.count() != 2 {
		t.Fatalf("expected 2 embed calls, got %d", emb.count())
	}
	second := svc.Resolve(context.Background(), emps)
	if emb.count() != 2 {
		t.Errorf("resolving unchanged employees must not embed again, got %d calls", emb.count())
	}
	for _, id := range []int64{1, 2} {
		if len(first[id]) != 2 || len(second[id]) != 2 {
			t.Errorf("employee %d: expected vectors, got %v / %v", id, first[id], second[id])
		}
	}
}

func TestResolve_PersistsNormalizedSourceText(t *testing.T) {
	v := newMemVectors()
	svc := newService(v, &countingEmbedder{}, nil)
	e := emp(7, "Backend developer", "Go")

	svc.Resolve(context.Background(), []employee.Employee{e})

	stored, err := v.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected stored vector: %v", err)
	}
	if stored.SourceText() != svc.SourceText(&e) {
		t.Errorf("stored text %q differs from fresh build %q", stored.SourceText(), svc.SourceText(&e))
	}
	if stored.Stale(svc.SourceText(&e)) {
		t.Error("fresh vector must not be stale")
	}
}

func TestResolve_EmbedFailureYieldsEmptyVector(t *testing.T) {
	v := newMemVectors()
	ok, bad := emp(1, "Backend developer", "Go"), emp(2, "Data scientist", "Python")
	svc := newService(v, &countingEmbedder{}, nil)
	emb := &countingEmbedder{fail: map[string]bool{svc.SourceText(&bad): true}}
	svc.embed = emb

	out := svc.Resolve(context.Background(), []employee.Employee{ok, bad})

	if len(out[1]) == 0 {
		t.Error("healthy employee should have a vector")
	}
	vec, present := out[2]
	if !present || len(vec) != 0 {
		t.Errorf("failed employee must map to an empty vector, got %v (present=%v)", vec, present)
	}
	if _, err := v.Get(context.Background(), 2); !errors.Is(err, domain.ErrProfileVectorNotFound) {
		t.Error("failed embedding must not be persisted")
	}
}

func TestResolve_StoreDownSkipsEmbedding(t *testing.T) {
	v := newMemVectors()
	v.getManyErr = errors.New("connection refused")
	emb := &countingEmbedder{}
	svc := newService(v, emb, nil)

	out := svc.Resolve(context.Background(), []employee.Employee{emp(1, "QA", "Selenium")})
	if emb.count() != 0 {
		t.Errorf("expected no embed calls, got %d", emb.count())
	}
	if vec, ok := out[1]; !ok || len(vec) != 0 {
		t.Errorf("expected empty vector entry, got %v", out)
	}
}

func TestResolve_Empty(t *testing.T) {
	svc := newService(newMemVectors(), &countingEmbedder{}, nil)
	if out := svc.Resolve(context.Background(), nil); len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}

func TestRebuild_SkipsUnchanged(t *testing.T) {
	v := newMemVectors()
	emb := &countingEmbedder{}
	svc := newService(v, emb, nil)
	e := emp(1, "Backend developer", "Go")

	if got := svc.Rebuild(context.Background(), &e); got != Rebuilt {
		t.Fatalf("first rebuild = %s, want %s", got, Rebuilt)
	}
	if got := svc.Rebuild(context.Background(), &e); got != Skipped {
		t.Errorf("unchanged rebuild = %s, want %s", got, Skipped)
	}
	if emb.count() != 1 {
		t.Errorf("expected 1 embed call, got %d", emb.count())
	}
}

func TestRebuild_RefreshesChangedProfile(t *testing.T) {
	v := newMemVectors()
	svc := newService(v, &countingEmbedder{}, nil)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	e := emp(1, "Backend developer", "Go")

	svc.now = func() time.Time { return t0 }
	svc.Rebuild(context.Background(), &e)

	e.Skills = append(e.Skills, employee.Skill{Name: "Kubernetes"})
	svc.now = func() time.Time { return t1 }
	if got := svc.Rebuild(context.Background(), &e); got != Rebuilt {
		t.Fatalf("rebuild = %s, want %s", got, Rebuilt)
	}

	stored, _ := v.Get(context.Background(), 1)
	if !stored.CreatedAt().Equal(t0) || !stored.UpdatedAt().Equal(t1) {
		t.Errorf("timestamps: created %v updated %v", stored.CreatedAt(), stored.UpdatedAt())
	}
	if stored.SourceText() != svc.SourceText(&e) {
		t.Error("stored text must follow the mutated profile")
	}
}

func TestRebuild_FailureIsSwallowed(t *testing.T) {
	v := newMemVectors()
	e := emp(1, "Backend developer", "Go")
	svc := newService(v, &countingEmbedder{}, nil)
	svc.embed = &countingEmbedder{fail: map[string]bool{svc.SourceText(&e): true}}

	if got := svc.Rebuild(context.Background(), &e); got != Failed {
		t.Errorf("rebuild = %s, want %s", got, Failed)
	}
}

func TestRebuild_NonRankableSkipped(t *testing.T) {
	emb := &countingEmbedder{}
	svc := newService(newMemVectors(), emb, nil)
	e := emp(1, "Backend developer", "Go")
	e.Bio = ""

	if got := svc.Rebuild(context.Background(), &e); got != Skipped {
		t.Errorf("rebuild = %s, want %s", got, Skipped)
	}
	if emb.count() != 0 {
		t.Error("non-rankable employee must not be embedded")
	}
}

func TestRebuildByID(t *testing.T) {
	e := emp(5, "Designer", "Figma")
	svc := newService(newMemVectors(), &countingEmbedder{}, &stubEmployees{byID: map[int64]employee.Employee{5: e}})

	out, err := svc.RebuildByID(context.Background(), 5)
	if err != nil || out != Rebuilt {
		t.Fatalf("RebuildByID(5) = %s, %v", out, err)
	}
	if _, err := svc.RebuildByID(context.Background(), 99); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	v := newMemVectors()
	svc := newService(v, &countingEmbedder{}, nil)
	e := emp(1, "QA", "Selenium")
	svc.Rebuild(context.Background(), &e)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.Get(context.Background(), 1); !errors.Is(err, domain.ErrProfileVectorNotFound) {
		t.Error("vector should be gone")
	}
}

func TestReindex(t *testing.T) {
	v := newMemVectors()
	a, b, c := emp(1, "QA", "Selenium"), emp(2, "Backend developer", "Go"), emp(3, "Analyst", "SQL")
	src := &stubEmployees{list: []employee.Employee{a, b, c}}
	svc := newService(v, &countingEmbedder{}, src)

	svc.Rebuild(context.Background(), &a)
	svc.embed = &countingEmbedder{fail: map[string]bool{svc.SourceText(&c): true}}

	st, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != (ReindexStats{Rebuilt: 1, Skipped: 1, Failed: 1}) {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestReindex_ListError(t *testing.T) {
	svc := newService(newMemVectors(), &countingEmbedder{}, &stubEmployees{err: errors.New("db down")})
	if _, err := svc.Reindex(context.Background()); err == nil {
		t.Error("expected error")
	}
}
