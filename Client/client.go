package Client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// ClientConfig holds configuration for creating an API client.
type ClientConfig struct {
	BaseURL    string
	SessionDir string
}

// Client is the consuming side of the Quill API. The session is an explicit
// object attached to every request; a 401 from any endpoint invalidates it.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session

	requestID uint64
}

// APIError is a structured error payload from the service. Field names the
// input the message belongs to, when the server knows it.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Field   string `json:"field"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		BaseURL:    config.BaseURL,
		HTTPClient: &http.Client{},
		Session:    NewSession(config.SessionDir),
	}
}

// nextRequestID hands out monotonic ids used to discard stale responses when
// requests race.
func (c *Client) nextRequestID() uint64 {
	return atomic.AddUint64(&c.requestID, 1)
}

func (c *Client) do(method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", path, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.Session.Invalidate()
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "Session expired, please log in again"}
	}
	return resp, nil
}

// postJSON posts a JSON payload and decodes the response into out.
// Error responses come back as *APIError.
func (c *Client) postJSON(path string, payload, out interface{}) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}
	resp, err := c.do(http.MethodPost, path, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *Client) getJSON(path string, out interface{}) error {
	resp, err := c.do(http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = "Something went wrong, please try again"
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
