// Package translate turns lyrics into another language through the MyMemory
// API, one line-aligned chunk at a time.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"songid/internal/language"
)

var (
	// ErrEmptyText is returned when there is nothing to translate.
	ErrEmptyText = errors.New("translate: empty text")
	// ErrSameLanguage is returned when source and target are the same.
	ErrSameLanguage = errors.New("translate: source and target language are the same")
)

// DefaultDelay is the pause between two chunk requests.
const DefaultDelay = 500 * time.Millisecond

// Result is the outcome of a translation.
// Text always has one segment per chunk; chunks that failed keep their
// original text.
type Result struct {
	Text       string
	Chunks     int
	Translated int
}

// OK reports whether at least one chunk was actually translated.
func (r Result) OK() bool {
	return r.Translated > 0
}

// Client translates text through MyMemory.
type Client struct {
	httpClient *http.Client
	apiURL     string
	target     language.Code
	email      string
	delay      time.Duration
	chunkSize  int
}

// New creates a client translating into target. email is optional and
// raises the anonymous daily quota when set.
func New(target language.Code, email string, delay time.Duration) *Client {
	if delay < 0 {
		delay = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     "https://api.mymemory.translated.net",
		target:     target,
		email:      email,
		delay:      delay,
		chunkSize:  ChunkSize,
	}
}

// Target returns the language the client translates into.
func (c *Client) Target() language.Code {
	return c.target
}

// Translate translates text from source into the client's target language.
// Failed chunks fall back to their original text, so the only errors are
// ErrEmptyText, ErrSameLanguage, or a cancelled context.
func (c *Client) Translate(ctx context.Context, text string, source language.Code) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}
	if source == c.target {
		return Result{}, ErrSameLanguage
	}

	chunks := Chunk(text, c.chunkSize)
	out := make([]string, 0, len(chunks))
	res := Result{Chunks: len(chunks)}

	for i, chunk := range chunks {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(c.delay):
			}
		}

		translated, err := c.translateChunk(ctx, chunk, source)
		if err != nil || translated == "" {
			out = append(out, chunk)
			continue
		}
		out = append(out, translated)
		res.Translated++
	}

	res.Text = strings.Join(out, "\n")
	return res, nil
}

func (c *Client) translateChunk(ctx context.Context, chunk string, source language.Code) (string, error) {
	params := url.Values{}
	params.Set("q", chunk)
	params.Set("langpair", fmt.Sprintf("%s|%s", source, c.target))
	if c.email != "" {
		params.Set("de", c.email)
	}

	reqURL := fmt.Sprintf("%s/get?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("User-Agent", "songid/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}

	return parseResponse(apiResp)
}

func parseResponse(r apiResponse) (string, error) {
	if status := r.status(); status != http.StatusOK {
		return "", fmt.Errorf("translation API response status %d", status)
	}
	text := strings.TrimSpace(r.ResponseData.TranslatedText)
	if text == "" {
		return "", errors.New("translation API returned empty text")
	}
	return text, nil
}

type apiResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// MyMemory sends this as a number on success and sometimes as a string on errors.
	ResponseStatus interface{} `json:"responseStatus"`
}

func (r apiResponse) status() int {
	switch v := r.ResponseStatus.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
