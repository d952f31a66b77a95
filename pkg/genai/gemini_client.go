package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator adalah kontrak chat LLM supaya service bisa di-mock saat test.
type Generator interface {
	GenerateContent(ctx context.Context, req *GenerateContentRequest) (*Content, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	BaseURL string
}

type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(cfg ClientConfig) *GeminiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *GeminiClient) GenerateContent(ctx context.Context, genReq *GenerateContentRequest) (*Content, error) {
	payloadJson, err := json.Marshal(genReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

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

	var genRes GenerateContentResponse
	if err := json.Unmarshal(resBody, &genRes); err != nil {
		return nil, err
	}

	if len(genRes.Candidates) == 0 || genRes.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return genRes.Candidates[0].Content, nil
}

// GenerateText adalah shortcut satu prompt tanpa tools, dipakai untuk judul
// percakapan dan jalur ask sederhana.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	content, err := c.GenerateContent(ctx, &GenerateContentRequest{
		Contents: []*Content{
			{
				Role:  RoleUser,
				Parts: []Part{{Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return content.Text(), nil
}
