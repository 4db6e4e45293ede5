package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the Al Adhan API base URL.
	DefaultBaseURL = "https://api.aladhan.com/v1"

	// CalculationMethod is the fixed method parameter sent with every request.
	CalculationMethod = 99

	defaultTimeout = 10 * time.Second
)

// Fetch failures fall into one of three classes. Every error returned by
// Client wraps exactly one of them.
var (
	ErrTransport = errors.New("prayer times request failed")
	ErrStatus    = errors.New("prayer times API returned an error")
	ErrMalformed = errors.New("malformed prayer times response")
)

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client. A non-positive timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
	}
}

// FetchByCity fetches prayer times for the given date, city, and country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string, method int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("method", strconv.Itoa(method))

	return c.doRequest(ctx, endpoint, params)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	var apiResp Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d: %s", ErrStatus, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: failed to decode API response: %v", ErrMalformed, err)
	}

	if resp.StatusCode != http.StatusOK || apiResp.Status != StatusOK {
		return nil, fmt.Errorf("%w: code=%d status=%q", ErrStatus, statusCode(resp, apiResp), apiResp.Status)
	}

	return &apiResp, nil
}

// statusCode prefers the code reported in the body, falling back to HTTP.
func statusCode(resp *http.Response, apiResp Response) int {
	if apiResp.Code != 0 {
		return apiResp.Code
	}
	return resp.StatusCode
}
