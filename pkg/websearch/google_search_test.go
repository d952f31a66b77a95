package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleSearchClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key param = %q", got)
		}
		if got := r.URL.Query().Get("cx"); got != "test-engine" {
			t.Errorf("cx param = %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "pengawasan dana desa" {
			t.Errorf("q param = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"title": "Judul Satu", "link": "https://a.go.id", "snippet": "cuplikan satu"},
				{"title": "Judul Dua", "link": "https://b.go.id", "snippet": "cuplikan dua"}
			]
		}`))
	}))
	defer server.Close()

	client := NewGoogleSearchClient(GoogleSearchConfig{
		APIKey:   "test-key",
		EngineID: "test-engine",
		Endpoint: server.URL,
	})

	results, err := client.Search(context.Background(), "pengawasan dana desa")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Judul Satu" || results[1].Link != "https://b.go.id" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestGoogleSearchClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := NewGoogleSearchClient(GoogleSearchConfig{Endpoint: server.URL})

	_, err := client.Search(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry status code: %v", err)
	}
}

func TestGoogleSearchClientNoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewGoogleSearchClient(GoogleSearchConfig{Endpoint: server.URL})

	results, err := client.Search(context.Background(), "tidak ada hasil")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{Title: "1", Link: "l1", Snippet: "s1"},
		{Title: "2", Link: "l2", Snippet: "s2"},
		{Title: "3", Link: "l3", Snippet: "s3"},
		{Title: "4", Link: "l4", Snippet: "s4"},
	}

	tests := []struct {
		name  string
		top   int
		wantN int
	}{
		{name: "cap at top", top: 3, wantN: 3},
		{name: "fewer than top", top: 10, wantN: 4},
		{name: "zero keeps all", top: 0, wantN: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatResults(results, tt.top)
			if err != nil {
				t.Fatalf("FormatResults() error = %v", err)
			}
			var decoded []Result
			if err := json.Unmarshal([]byte(out), &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if len(decoded) != tt.wantN {
				t.Errorf("got %d results, want %d", len(decoded), tt.wantN)
			}
		})
	}
}
