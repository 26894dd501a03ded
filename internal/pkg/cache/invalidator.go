package cache

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Invalidator notifies an external page cache that a rendered view is stale.
// Notifications are fire-and-forget: failures are logged and dropped, they
// never affect the operation that triggered them.
type Invalidator struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewInvalidator creates an Invalidator posting to the given revalidation
// endpoint. An empty endpoint disables invalidation entirely.
func NewInvalidator(endpoint string, logger zerolog.Logger) *Invalidator {
	return &Invalidator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

// Invalidate schedules an invalidation for the view identified by path.
// It returns immediately; the request runs in the background.
func (i *Invalidator) Invalidate(path string) {
	if i.endpoint == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		target := i.endpoint + "?path=" + url.QueryEscape(path)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
		if err != nil {
			i.logger.Warn().Err(err).Str("path", path).Msg("Failed to build cache invalidation request")
			return
		}

		resp, err := i.client.Do(req)
		if err != nil {
			i.logger.Warn().Err(err).Str("path", path).Msg("Cache invalidation request failed")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			i.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("Cache invalidation rejected")
		}
	}()
}
