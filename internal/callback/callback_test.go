package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

func TestDeliver_PostsToSubmitEndpointWithAuthHeader(t *testing.T) {
	var gotPath, gotHeader string
	var gotBody domain.BatchResult

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "X-Api-Key", "secret-key", zap.NewNop())
	result := domain.BatchResult{SubmissionID: "sub-1", CompilationSuccess: true}

	if err := c.Deliver(context.Background(), result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/evaluate/container-submit" {
		t.Errorf("expected submit path, got %q", gotPath)
	}
	if gotHeader != "secret-key" {
		t.Errorf("expected api key header to be set, got %q", gotHeader)
	}
	if gotBody.SubmissionID != "sub-1" {
		t.Errorf("expected submission id round-tripped, got %q", gotBody.SubmissionID)
	}
}

func TestDeliver_NonSuccessStatusReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "X-Api-Key", "secret-key", zap.NewNop())
	err := c.Deliver(context.Background(), domain.BatchResult{SubmissionID: "sub-1"})
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestDeliver_UnreachableOrchestratorReturnsError(t *testing.T) {
	c := New("http://127.0.0.1:1", "X-Api-Key", "secret-key", zap.NewNop())
	err := c.Deliver(context.Background(), domain.BatchResult{SubmissionID: "sub-1"})
	if err == nil {
		t.Fatal("expected an error when the orchestrator is unreachable")
	}
}
