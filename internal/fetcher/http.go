package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rankings-api/internal/models"
)

const maxResponseBytes = 1024 * 1024 // 1MB limit on upstream responses

// HTTPFetcher implements Service against the upstream ranking HTTP API
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewHTTPFetcher creates a new HTTP-based ranking fetcher
func NewHTTPFetcher(baseURL string, timeout time.Duration) Service {
	return newHTTPFetcher(baseURL, timeout)
}

// newHTTPFetcher creates the concrete implementation
func newHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Allow up to 5 redirects
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// FetchRanking retrieves the ranking history for the given domain.
// Every outcome is expressed in the Result tag; it never panics the batch.
func (f *HTTPFetcher) FetchRanking(ctx context.Context, domain string) Result {
	if domain == "" {
		return failed(fmt.Errorf("%w: empty domain", models.ErrInvalidDomain))
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/rankings/%s", f.baseURL, url.PathEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failed(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", "Rankings-API/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// A timed-out domain is omitted like any other failed one
		if ctx.Err() == context.DeadlineExceeded {
			return failed(fmt.Errorf("%w: %v", models.ErrFetchTimeout, err))
		}
		return failed(fmt.Errorf("failed to fetch ranking: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{Status: StatusNotFound}
	}

	if resp.StatusCode != http.StatusOK {
		return failed(fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status))
	}

	body, err := f.readBodyWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return failed(fmt.Errorf("failed to read response body: %w", err))
	}

	var ranking models.UpstreamRanking
	if err := json.Unmarshal(body, &ranking); err != nil {
		return failed(fmt.Errorf("failed to decode ranking response: %w", err))
	}

	return Result{Status: StatusFound, Ranking: &ranking}
}

// readBodyWithLimit reads the response body with a size limit
func (f *HTTPFetcher) readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	limitedReader := io.LimitReader(body, maxSize)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) >= maxSize {
		return nil, fmt.Errorf("ranking response too large (exceeds %d bytes)", maxSize)
	}

	return data, nil
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}
