package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchError is returned when the upstream CMS request fails, carrying the
// upstream error text verbatim for diagnosability.
type FetchError struct {
	Message string
	Status  int
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("content fetch failed: status=%d %s", e.Status, e.Message)
	}
	return "content fetch failed: " + e.Message
}

// Client issues GraphQL requests against a single configured endpoint.
// It is stateless and performs no retries; retry policy belongs to callers.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New creates a Client for the given endpoint. Token may be empty for
// public read access.
func New(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		token:    strings.TrimSpace(token),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Fetch performs one round trip and unmarshals the data payload into out.
// A non-empty errors array is a full operation failure even when partial
// data is present.
func (c *Client) Fetch(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if c.endpoint == "" {
		return &FetchError{Message: "content endpoint is not configured"}
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return &FetchError{Message: err.Error(), Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Message: strings.TrimSpace(string(raw)), Status: resp.StatusCode}
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &FetchError{Message: "invalid response envelope: " + err.Error(), Status: resp.StatusCode}
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return &FetchError{Message: strings.Join(messages, "; ")}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data payload: %w", err)
	}
	return nil
}
