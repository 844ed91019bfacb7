package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/db"
	"github.com/kailas-cloud/hrsearch/internal/domain"
)

type countingEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *countingEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *countingEmbedder) HealthCheck(_ context.Context) error { return m.err }

// memStore is an in-memory stand-in for the Redis KV store.
type memStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &countingEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 7,
		TotalTokens:  7,
	}}
	st := newMemStore()
	ce := New(inner, st, "bge-m3", time.Hour, nil, zap.NewNop())
	ctx := context.Background()

	first, err := ce.Embed(ctx, "python django")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalTokens != 7 {
		t.Errorf("miss should report provider tokens, got %d", first.TotalTokens)
	}

	second, err := ce.Embed(ctx, "python django")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit should report zero tokens, got %d", second.TotalTokens)
	}
	if len(second.Embedding) != 3 || second.Embedding[2] != 0.3 {
		t.Errorf("unexpected cached vector: %v", second.Embedding)
	}

	for k, ttl := range st.ttls {
		if !strings.HasPrefix(k, "hrsearch:emb_cache:bge-m3:") {
			t.Errorf("unexpected key %q", k)
		}
		if ttl != time.Hour {
			t.Errorf("expected 1h ttl, got %v", ttl)
		}
	}
}

func TestEmbed_KeysAreModelScoped(t *testing.T) {
	st := newMemStore()
	a := New(&countingEmbedder{}, st, "model-a", 0, nil, zap.NewNop())
	b := New(&countingEmbedder{}, st, "model-b", 0, nil, zap.NewNop())

	if a.key("same text") == b.key("same text") {
		t.Fatal("expected distinct keys for distinct models")
	}
}

func TestEmbed_InnerErrorIsWrapped(t *testing.T) {
	inner := &countingEmbedder{err: domain.ErrEmbeddingProviderError}
	ce := New(inner, newMemStore(), "m", time.Minute, nil, zap.NewNop())

	_, err := ce.Embed(context.Background(), "x")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestEmbed_StoreFailuresDegradeToProvider(t *testing.T) {
	inner := &countingEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	st := newMemStore()
	st.getErr = errors.New("connection refused")
	st.setErr = errors.New("connection refused")
	ce := New(inner, st, "m", time.Minute, nil, zap.NewNop())

	res, err := ce.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("cache outage must not fail embedding: %v", err)
	}
	if len(res.Embedding) != 1 || inner.calls != 1 {
		t.Fatalf("expected provider result, got %v after %d calls", res.Embedding, inner.calls)
	}
}

func TestEmbed_CorruptEntryIsIgnored(t *testing.T) {
	inner := &countingEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.5}}}
	st := newMemStore()
	ce := New(inner, st, "m", time.Minute, nil, zap.NewNop())
	st.data[ce.key("x")] = []byte{1, 2, 3}

	res, err := ce.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 || res.Embedding[0] != 0.5 {
		t.Fatalf("expected re-embed on corrupt entry")
	}
}

func TestEmbed_EmptyVectorNotCached(t *testing.T) {
	inner := &countingEmbedder{result: domain.EmbeddingResult{}}
	st := newMemStore()
	ce := New(inner, st, "m", time.Minute, nil, zap.NewNop())

	if _, err := ce.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.data) != 0 {
		t.Fatalf("expected nothing cached, got %d entries", len(st.data))
	}
}

func TestHealthCheck_Delegates(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("down")}
	ce := New(inner, newMemStore(), "m", 0, nil, zap.NewNop())

	if err := ce.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected inner health error")
	}
}
