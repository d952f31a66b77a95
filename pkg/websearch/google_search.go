package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

// Result adalah satu hasil pencarian yang dikirim balik ke model.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher dipisah sebagai interface supaya chat service bisa di-test tanpa
// memanggil Google beneran.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

type GoogleSearchConfig struct {
	APIKey   string
	EngineID string
	Timeout  time.Duration
	Endpoint string
}

type GoogleSearchClient struct {
	apiKey     string
	engineID   string
	endpoint   string
	httpClient *http.Client
}

func NewGoogleSearchClient(cfg GoogleSearchConfig) *GoogleSearchClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GoogleSearchClient{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Items []Result `json:"items"`
}

func (c *GoogleSearchClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var parsed searchResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, err
	}

	return parsed.Items, nil
}

// FormatResults menyusun maksimal top hasil sebagai JSON string untuk
// dikembalikan sebagai function response ke model.
func FormatResults(results []Result, top int) (string, error) {
	if top > 0 && len(results) > top {
		results = results[:top]
	}
	out, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
