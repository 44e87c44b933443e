package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lazypower/tastequest/internal/taste"
)

// HTTPProvider reads the position from a device or geo-IP endpoint that
// answers with {"latitude": .., "longitude": ..}. A 401 or 403 means the
// user has denied access.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider creates a provider for url.
func NewHTTPProvider(url string) *HTTPProvider {
	return &HTTPProvider{url: url, client: &http.Client{}}
}

// Current implements Provider.
func (p *HTTPProvider) Current(ctx context.Context) (taste.Location, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.url, nil)
	if err != nil {
		return taste.Location{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return taste.Location{}, fmt.Errorf("GET %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return taste.Location{}, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return taste.Location{}, fmt.Errorf("GET %s: status %d: %s", p.url, resp.StatusCode, body)
	}

	var loc taste.Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return taste.Location{}, fmt.Errorf("decode location: %w", err)
	}
	return loc, nil
}
