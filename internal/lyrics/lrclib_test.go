package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLRCLibFetch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "synced and plain lyrics",
			status: http.StatusOK,
			body: `{
				"syncedLyrics": "[00:12.00]Hello world",
				"plainLyrics": "Hello world"
			}`,
			want: "Hello world",
		},
		{
			name:   "synced only",
			status: http.StatusOK,
			body: `{
				"syncedLyrics": "[00:12.00] Yesterday\n[00:15.31] All my troubles seemed so far away",
				"plainLyrics": ""
			}`,
			want: "Yesterday\nAll my troubles seemed so far away",
		},
		{
			name:   "no lyrics",
			status: http.StatusOK,
			body:   `{"syncedLyrics": "", "plainLyrics": ""}`,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"code":404,"name":"NotFoundError","message":"Failed to find specified track"}`,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `internal server error`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != "songid/1.0" {
					t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewLRCLib()
			c.apiURL = srv.URL

			got, err := c.Fetch(context.Background(), "Artist", "Title")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Fetch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLRCLibQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("artist_name"); got != "The Beatles" {
			t.Errorf("artist_name = %q, want %q", got, "The Beatles")
		}
		if got := q.Get("track_name"); got != "Let It Be" {
			t.Errorf("track_name = %q, want %q", got, "Let It Be")
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewLRCLib()
	c.apiURL = srv.URL

	c.Fetch(context.Background(), "The Beatles", "Let It Be")
}

func TestLRCLibRetriesTransientError(t *testing.T) {
	c := NewLRCLib()
	c.apiURL = "http://127.0.0.1:1/api/get"
	c.retryDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx, "Artist", "Title"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestStripTimestamps(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[00:01.00]one\n[00:02.50]two", "one\ntwo"},
		{"[01:02]no centis", "no centis"},
		{"[00:01:00]colon form", "colon form"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripTimestamps(tt.in); got != tt.want {
			t.Errorf("StripTimestamps(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
