package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const chartLyricsYesterday = `<?xml version="1.0" encoding="utf-8"?>
<GetLyricResult xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns="http://api.chartlyrics.com/">
  <TrackId>0</TrackId>
  <LyricChecksum>a4a56a99ee00cd8e67872a7764d6f9c6</LyricChecksum>
  <LyricId>1710</LyricId>
  <LyricSong>Yesterday</LyricSong>
  <LyricArtist>The Beatles</LyricArtist>
  <LyricUrl>http://www.chartlyrics.com/28h-8jRkeE2LyZzR4JMgsA/Yesterday.aspx</LyricUrl>
  <LyricCovertArtUrl>http://ec1.images-amazon.com/images/P/B000002UAU.jpg</LyricCovertArtUrl>
  <LyricRank>9</LyricRank>
  <LyricCorrectUrl>http://www.chartlyrics.com/app/correct.aspx?lid=MTcxMA==</LyricCorrectUrl>
  <Lyric>Yesterday
All my troubles seemed so far away
Now it looks as though they&#39;re here to stay
Oh, I believe in yesterday</Lyric>
</GetLyricResult>`

func TestParseChartLyrics(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		artist string
		title  string
		want   string
	}{
		{
			name:   "exact match",
			body:   chartLyricsYesterday,
			artist: "The Beatles",
			title:  "Yesterday",
			want: "Yesterday\nAll my troubles seemed so far away\n" +
				"Now it looks as though they're here to stay\nOh, I believe in yesterday",
		},
		{
			name:   "query contained in result",
			body:   chartLyricsYesterday,
			artist: "Beatles",
			title:  "yesterday",
			want:   "Yesterday",
		},
		{
			name:   "typo in artist",
			body:   chartLyricsYesterday,
			artist: "The Beatels",
			title:  "Yesterday",
			want:   "Yesterday",
		},
		{
			name:   "best guess for another song",
			body:   chartLyricsYesterday,
			artist: "Radiohead",
			title:  "Creep",
		},
		{
			name:   "empty lyric",
			body:   `<GetLyricResult><LyricSong>Yesterday</LyricSong><LyricArtist>The Beatles</LyricArtist><Lyric></Lyric></GetLyricResult>`,
			artist: "The Beatles",
			title:  "Yesterday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChartLyrics(strings.NewReader(tt.body), tt.artist, tt.title)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no lyrics, got %q", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("parseChartLyrics() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestChartLyricsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/apiv1.asmx/SearchLyricDirect" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("artist"); got != "The Beatles" {
			t.Errorf("artist = %q", got)
		}
		if got := r.URL.Query().Get("song"); got != "Yesterday" {
			t.Errorf("song = %q", got)
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Write([]byte(chartLyricsYesterday))
	}))
	defer srv.Close()

	c := NewChartLyrics()
	c.apiURL = srv.URL

	got, err := c.Fetch(context.Background(), "The Beatles", "Yesterday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "Yesterday\nAll my troubles") {
		t.Errorf("Fetch() = %q", got)
	}
}

func TestChartLyricsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChartLyrics()
	c.apiURL = srv.URL

	if _, err := c.Fetch(context.Background(), "The Beatles", "Yesterday"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
