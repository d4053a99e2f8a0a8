package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Result is the durable reference returned by the image host.
type Result struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// Uploader accepts a file and returns a durable URL plus file id; receipts and
// catalog images both go through here.
type Uploader interface {
	Upload(ctx context.Context, fileName string, file io.Reader) (*Result, error)
}

// Client talks to an ImageKit-style upload endpoint.
type Client struct {
	endpoint   string
	privateKey string
	httpClient *http.Client
}

func NewClient(endpoint, privateKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		privateKey: privateKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Upload(ctx context.Context, fileName string, file io.Reader) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file contents: %w", err)
	}
	if err := writer.WriteField("fileName", fileName); err != nil {
		return nil, fmt.Errorf("write fileName field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upload returned %d: %s", resp.StatusCode, msg)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("upload response missing url")
	}
	return &result, nil
}
