package eateryfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/observability/logging"
)

// Client fetches the eatery directory from the upstream data-fetch
// collaborator and translates it into the domain model.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cal        *domain.Calendar
}

func NewClient(baseURL string, cal *domain.Calendar) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cal: cal,
	}
}

func (c *Client) FetchEateries(ctx context.Context) ([]domain.Eatery, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed base URL: %w", err)
	}
	u.Path = "/api/v1/eateries"

	slog.DebugContext(ctx, "fetching eatery feed",
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch eatery feed",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to fetch eatery feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from eatery feed",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code from eatery feed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	eateries := make([]domain.Eatery, 0, len(feed.Eateries))
	for _, dto := range feed.Eateries {
		eateries = append(eateries, dto.toDomain(c.cal))
	}

	slog.DebugContext(ctx, "eatery feed fetched",
		slog.Int("eatery_count", len(eateries)),
	)

	return eateries, nil
}
