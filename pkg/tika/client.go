package tika

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client memanggil Apache Tika server untuk ekstraksi teks PDF/DOCX.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

type Config struct {
	ServerURL string
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		serverURL: cfg.ServerURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExtractText mengirim body file ke endpoint /tika dan mengembalikan teks polos.
func (c *Client) ExtractText(ctx context.Context, fileReader io.Reader, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.serverURL+"/tika", fileReader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", contentType)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call tika: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika returned status %d: %s", res.StatusCode, string(resBody))
	}

	return string(resBody), nil
}
