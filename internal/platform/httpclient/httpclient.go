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
	DefaultTimeout = 10 * time.Second

	maxResponse = 1 << 20
)

// Client habla JSON con un server zoo-admin (lo usa el CLI).
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// Token opcional; se manda como "Authorization: Bearer <token>".
	Token string
	// DebugUserID opcional, solo sirve contra un server en modo dev.
	DebugUserID string
}

// New valida baseURL y arma el cliente con timeout (<=0 => DefaultTimeout).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError es una respuesta no-2xx. Message sale del cuerpo {"error": ...}
// cuando el server lo manda así; si no, es el texto plano.
type HTTPError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("http error: status=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http error: status=%d: %s %v", e.StatusCode, e.Message, e.Fields)
}

// IsStatus dice si err es un HTTPError con ese código.
func IsStatus(err error, code int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == code
}

// DoJSON manda in (si no es nil) como JSON a path y decodifica la respuesta en out
// (si no es nil). query se agrega a la URL.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	full := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.DebugUserID != "" {
		req.Header.Set("X-Debug-User-ID", c.DebugUserID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func decodeError(code int, raw []byte) error {
	he := &HTTPError{StatusCode: code, Message: strings.TrimSpace(string(raw))}

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		he.Message = body.Error
		he.Fields = body.Fields
	}
	return he
}
