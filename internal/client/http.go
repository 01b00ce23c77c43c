package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// HTTPClient implements ProfileClient using the vitrine HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check that HTTPClient implements ProfileClient.
var _ ProfileClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func profilePath(fid int64, rest string) string {
	return "/v1/profiles/" + strconv.FormatInt(fid, 10) + rest
}

// --- Profiles ---

func (c *HTTPClient) LoadProfile(ctx context.Context, fid int64) (*profile.LoadResult, error) {
	var res profile.LoadResult
	if err := c.doJSON(ctx, http.MethodGet, profilePath(fid, ""), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Preferences ---

func (c *HTTPClient) SavePreferences(ctx context.Context, fid int64, rec *model.PreferencesRecord) (*profile.SaveResult, error) {
	var res profile.SaveResult
	if err := c.doJSON(ctx, http.MethodPut, profilePath(fid, "/preferences"), rec, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, fid int64, patch *model.PreferencesPatch) (*profile.SaveResult, error) {
	var res profile.SaveResult
	if err := c.doJSON(ctx, http.MethodPatch, profilePath(fid, "/preferences"), patch, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdatePreferenceField(ctx context.Context, fid int64, field string, value json.RawMessage) (*profile.SaveResult, error) {
	body := map[string]json.RawMessage{"value": value}
	var res profile.SaveResult
	if err := c.doJSON(ctx, http.MethodPut, profilePath(fid, "/preferences/"+url.PathEscape(field)), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ClearPreferences(ctx context.Context, fid int64) (*profile.SaveResult, error) {
	var res profile.SaveResult
	if err := c.doJSON(ctx, http.MethodDelete, profilePath(fid, "/preferences"), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Mint entitlements ---

func (c *HTTPClient) RecordMint(ctx context.Context, fid int64, txHash string) (*profile.SaveResult, error) {
	body := map[string]string{}
	if txHash != "" {
		body["txHash"] = txHash
	}
	var res profile.SaveResult
	if err := c.doJSON(ctx, http.MethodPost, profilePath(fid, "/mint"), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CheckMint(ctx context.Context, fid int64) (*profile.EntitlementStatus, error) {
	var status profile.EntitlementStatus
	if err := c.doJSON(ctx, http.MethodGet, profilePath(fid, "/mint"), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON
// response. If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Gate denials and store outages carry a decodable SaveResult
		// body; let the caller see it instead of an opaque error.
		if result != nil && json.Unmarshal(respBody, result) == nil {
			if res, ok := result.(*profile.SaveResult); ok && res.Error != "" {
				return nil
			}
		}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
