package deezer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"songid/internal/metadata"
)

const helpSearch = `{
	"data": [{
		"id": 116348452,
		"title": "Help! (Remastered 2009)",
		"title_short": "Help!",
		"link": "https://www.deezer.com/track/116348452",
		"artist": {"id": 1, "name": "The Beatles"},
		"album": {
			"title": "Help! (Remastered)",
			"cover_big": "https://e-cdns-images.dzcdn.net/images/cover/500x500.jpg",
			"cover_xl": "https://e-cdns-images.dzcdn.net/images/cover/1000x1000.jpg"
		}
	}],
	"total": 1
}`

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "songid/1.0" {
			t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
		}
		if got := r.URL.Query().Get("q"); got != `track:"Help!" artist:"The Beatles"` {
			t.Errorf("q = %q", got)
		}
		w.Write([]byte(helpSearch))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New()
	c.apiURL = srv.URL

	results, err := c.Search(context.Background(), metadata.SearchQuery{
		Title:  "Help!",
		Artist: "The Beatles",
		Album:  "Help!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Title != "Help!" {
		t.Errorf("Title = %q, want %q", r.Title, "Help!")
	}
	if r.Artist != "The Beatles" {
		t.Errorf("Artist = %q, want %q", r.Artist, "The Beatles")
	}
	if r.Album != "Help! (Remastered)" {
		t.Errorf("Album = %q", r.Album)
	}
	if r.ArtworkURL != "https://e-cdns-images.dzcdn.net/images/cover/1000x1000.jpg" {
		t.Errorf("ArtworkURL = %q, want cover_xl", r.ArtworkURL)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := New()
	results, err := c.Search(context.Background(), metadata.SearchQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results for empty query, got %d", len(results))
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Data: []trackItem{}})
	}))
	defer srv.Close()

	c := New()
	c.apiURL = srv.URL

	results, err := c.Search(context.Background(), metadata.SearchQuery{Title: "nonexistent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{
			Error: &apiError{Type: "Exception", Message: "Quota limit exceeded", Code: 4},
		})
	}))
	defer srv.Close()

	c := New()
	c.apiURL = srv.URL

	if _, err := c.Search(context.Background(), metadata.SearchQuery{Title: "test"}); err == nil {
		t.Fatal("expected error for API error response")
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		query metadata.SearchQuery
		want  string
	}{
		{
			name:  "album is ignored",
			query: metadata.SearchQuery{Title: "Yesterday", Artist: "The Beatles", Album: "Help!"},
			want:  `track:"Yesterday" artist:"The Beatles"`,
		},
		{
			name:  "title only",
			query: metadata.SearchQuery{Title: "Yesterday"},
			want:  `track:"Yesterday"`,
		},
		{
			name:  "quotes stripped",
			query: metadata.SearchQuery{Title: `Say "Hello"`, Artist: "X"},
			want:  `track:"Say Hello" artist:"X"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.query); got != tt.want {
				t.Errorf("buildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResultsFallbacks(t *testing.T) {
	var items []trackItem
	body := `[{"title":"Yesterday","artist":{"name":"The Beatles"},"album":{"cover_big":"big.jpg"}}]`
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		t.Fatal(err)
	}

	results := parseResults(items)
	if results[0].Title != "Yesterday" {
		t.Errorf("expected full title when title_short is missing, got %q", results[0].Title)
	}
	if results[0].ArtworkURL != "big.jpg" {
		t.Errorf("expected cover_big fallback, got %q", results[0].ArtworkURL)
	}
}
