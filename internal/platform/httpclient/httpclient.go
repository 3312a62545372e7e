package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout      = 5 * time.Second
	DefaultAPIKeyHeader = "X-Api-Key"

	maxBodyBytes = 1 << 20
)

var (
	ErrNotConfigured = errors.New("httpclient: base url not configured")
	ErrUnauthorized  = errors.New("httpclient: upstream rejected credentials")
	ErrUpstream      = errors.New("httpclient: upstream error")
)

// Config de un cliente hacia un servicio interno (IAM, roles).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío se usa X-Api-Key.
	APIKeyHeader string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client es el cliente JSON compartido por los adapters remotos.
type Client struct {
	http         *http.Client
	baseURL      string
	apiKey       string
	apiKeyHeader string
}

func New(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = DefaultAPIKeyHeader
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
		}
	}

	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	return &Client{
		http:         &http.Client{Timeout: timeout, Transport: tr},
		baseURL:      base,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != ""
}

// StatusError representa una respuesta no-2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status=%d body=%s", e.StatusCode, e.Body)
}

// Is: 401/403 son ErrUnauthorized, el resto ErrUpstream.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUpstream:
		return e.StatusCode != http.StatusUnauthorized && e.StatusCode != http.StatusForbidden
	}
	return false
}

func (c *Client) GetJSON(ctx context.Context, path string, headers map[string]string, out any) error {
	return c.DoJSON(ctx, http.MethodGet, path, headers, nil, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, headers map[string]string, in, out any) error {
	return c.DoJSON(ctx, http.MethodPost, path, headers, in, out)
}

// DoJSON manda in como JSON (si no es nil) y decodifica la respuesta en out
// (si no es nil). Un status no-2xx se devuelve como *StatusError.
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
