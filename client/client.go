package client

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

	"merch-intake/models"
)

// ErrNotFound is returned when the API answers 404
var ErrNotFound = errors.New("request not found")

// APIError is a non-2xx answer of the merch request API
type APIError struct {
	StatusCode int
	Message    string
	Details    []models.FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, d.Field+" "+d.Message)
	}
	return fmt.Sprintf("api returned status %d: %s (%s)", e.StatusCode, e.Message, strings.Join(fields, "; "))
}

// Client talks to the merch request API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL, e.g. http://localhost:8080
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient replaces the underlying http.Client
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// CreateRequest submits a new merch request
func (c *Client) CreateRequest(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error) {
	var record models.MerchRequest
	if err := c.do(ctx, http.MethodPost, "/api/requests", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRequest fetches a merch request by id
func (c *Client) GetRequest(ctx context.Context, id string) (*models.MerchRequest, error) {
	var record models.MerchRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// AddFiles attaches files to an existing merch request
func (c *Client) AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error) {
	if files == nil {
		files = []models.UploadedFile{}
	}
	var record models.MerchRequest
	if err := c.do(ctx, http.MethodPost, "/api/requests/"+url.PathEscape(id)+"/files", files, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Catalog fetches the product catalog
func (c *Client) Catalog(ctx context.Context) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errResp models.ErrorResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Details = errResp.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(bodyBytes))
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
