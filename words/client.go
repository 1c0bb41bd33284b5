// Package words talks to the word-list service that supplies puzzle words
// and their anagram solutions.
package words

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

var ErrUnexpectedStatus = errors.New("unexpected status from word service")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type wordsRequest struct {
	Length int `json:"length"`
}

type lettersRequest struct {
	Letters string `json:"letters"`
}

type wordsResponse struct {
	Words []string `json:"words"`
}

// FetchWords returns candidate words of the given length.
func (c *Client) FetchWords(ctx context.Context, length int) ([]string, error) {
	return c.post(ctx, "/api/words", wordsRequest{Length: length})
}

// FetchAnagramSolutions returns every dictionary word that can be formed
// from letters.
func (c *Client) FetchAnagramSolutions(ctx context.Context, letters string) ([]string, error) {
	return c.post(ctx, "/api/anagrams/letters", lettersRequest{Letters: letters})
}

func (c *Client) post(ctx context.Context, path string, body any) ([]string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("POST %s: %w: %d", path, ErrUnexpectedStatus, res.StatusCode)
	}
	var parsed wordsResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("POST %s: decoding response: %w", path, err)
	}
	return parsed.Words, nil
}
