// Package saucenao is the HTTP transport for the search.php endpoint.
package saucenao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/domain/request"
	"github.com/kailas-cloud/saucenao/internal/domain/result"
)

// DefaultBaseURL is the public search endpoint.
const DefaultBaseURL = "https://saucenao.com/search.php"

const (
	defaultTimeout = 60 * time.Second
	maxBodySize    = 4 << 20
)

// Config holds the transport settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Logger     *zap.Logger
}

// Client sends lookups to SauceNAO.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewClient creates a transport. Zero fields fall back to defaults.
func NewClient(cfg *Config) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		http:      cfg.HTTPClient,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Search sends the lookup and decodes the JSON body. A body that is not
// valid JSON yields an envelope with a nil Body rather than an error, since
// the status code alone is enough to classify most failures.
func (c *Client) Search(ctx context.Context, req *request.Request) (result.Envelope, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return result.Envelope{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return result.Envelope{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return result.Envelope{}, fmt.Errorf("read response: %w", err)
	}

	env := result.Envelope{StatusCode: resp.StatusCode}
	var body result.Response
	if err := json.Unmarshal(data, &body); err != nil {
		c.logger.Debug("Response body is not JSON",
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return env, nil
	}
	env.Body = &body
	return env, nil
}

func (c *Client) newRequest(ctx context.Context, req *request.Request) (*http.Request, error) {
	var (
		httpReq *http.Request
		err     error
	)
	if req.IsUpload() {
		httpReq, err = c.newUpload(ctx, req)
	} else {
		httpReq, err = http.NewRequestWithContext(
			ctx, http.MethodGet, c.baseURL+"?"+req.Values().Encode(), http.NoBody,
		)
	}
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	return httpReq, nil
}

// newUpload encodes params and file content as multipart/form-data.
func (c *Client) newUpload(ctx context.Context, req *request.Request) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, values := range req.Values() {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				return nil, fmt.Errorf("write field %s: %w", key, err)
			}
		}
	}
	part, err := mw.CreateFormFile("file", req.FileName())
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, req.File()); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return httpReq, nil
}
