package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--addr", srv.URL, "--api-key", "k"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSearchCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("query"); q != "senior go developer" {
			t.Errorf("query = %q", q)
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("missing bearer key")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"search_id":"s1","mode":"fallback","degraded":true,
			"reason":"interpretation_failed","results":[{"id":3,"full_name":"Olga Smirnova",
			"position":"Backend","department":"IT","experience_years":4,"skills":["Go"],
			"level":2,"xp_points":10,"relevance_score":1,"semantic_score":0,"skills_match":1}]}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "search", "senior", "go", "developer", "-n", "3")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	for _, want := range []string{"mode=fallback", "reason=interpretation_failed", "Olga Smirnova", "1.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRebuildCmd_InvalidID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("server must not be called")
	}))
	defer srv.Close()

	if _, err := run(t, srv, "rebuild", "abc"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRebuildCmd_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"employee_not_found","message":"employee not found"}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "rebuild", "42")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "employee not found") {
		t.Errorf("output = %s", out)
	}
}

func TestHealthCmd_DegradedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded","checks":{"redis":"error","postgres":"ok"}}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "health")
	if err == nil {
		t.Fatal("degraded server should exit non-zero")
	}
	if strings.Index(out, "postgres") > strings.Index(out, "redis") {
		t.Errorf("checks should be sorted:\n%s", out)
	}
}

func TestReindexCmd_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/profile-vectors/reindex" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rebuilt":2,"skipped":0,"failed":1}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "reindex", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"Rebuilt": 2`) || !strings.Contains(out, `"Failed": 1`) {
		t.Errorf("output = %s", out)
	}
}
