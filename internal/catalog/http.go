package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lazypower/tastequest/internal/taste"
)

const defaultHTTPTimeout = 5 * time.Second

// HTTPSource fetches items from a remote catalog service. Each call makes
// exactly one request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for baseURL. A zero timeout uses 5s.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPSource{
		url:    baseURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Nearby implements Source via GET {url}?lat=&lon=&radius_km=.
func (s *HTTPSource) Nearby(ctx context.Context, at taste.Location, radiusKm float64) ([]taste.Item, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	q.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, "GET", s.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api status %d: %s", resp.StatusCode, body)
	}
	return DecodeItems(body)
}
