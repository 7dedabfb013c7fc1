package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/vytor/nihaocards/internal/logger"
)

// Client calls the remote procedure that evaluates and grants sticker
// unlocks. The unlock rules live behind that endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

func New(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type unlockRequest struct {
	UserID string `json:"p_user_id"`
}

// Unlock asks the remote side to check userID's unlocks and returns how many
// stickers it reported as newly granted.
func (c *Client) Unlock(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("rewards").WithField("user_id", userID)

	body, err := json.Marshal(unlockRequest{UserID: userID})
	if err != nil {
		return 0, errors.Wrap(err, "encode unlock request")
	}

	log.Debug("calling unlock endpoint: %s", c.url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return 0, errors.Wrap(err, "create unlock request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to call unlock endpoint: %v", err)
		return 0, errors.Wrap(err, "call unlock endpoint")
	}
	defer resp.Body.Close()

	log.Debug("unlock response received in %v, status=%d", time.Since(start), resp.StatusCode)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		log.Error("failed to read unlock response: %v", err)
		return 0, errors.Wrap(err, "read unlock response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("unlock request failed: status=%d, body=%s", resp.StatusCode, string(payload))
		return 0, errors.Errorf("unlock status %d: %s", resp.StatusCode, string(payload))
	}

	// The procedure answers with the granted stickers, either as a bare
	// array or wrapped in {"unlocked": [...]}.
	res := gjson.ParseBytes(payload)
	if res.Get("unlocked").IsArray() {
		res = res.Get("unlocked")
	}
	granted := 0
	if res.IsArray() {
		granted = len(res.Array())
	}

	log.Info("unlock check finished, %d new stickers", granted)
	return granted, nil
}

// Noop is used when no unlock endpoint is configured.
type Noop struct{}

func (Noop) Unlock(ctx context.Context, userID string) (int, error) {
	logger.FromContext(ctx).WithPrefix("rewards").
		Debug("no unlock endpoint configured, skipping check for %s", userID)
	return 0, nil
}
