package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"booking-service/internal/data/entity"
	"booking-service/pkg/utils"
)

// httpClient calls peer services with a privileged service token.
type httpClient struct {
	client  *http.Client
	secret  string
	baseURL string
}

func newHTTPClient(baseURL, secret string, timeout time.Duration) httpClient {
	return httpClient{
		client:  &http.Client{Timeout: timeout},
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// post sends body (may be nil) to baseURL/path and decodes the JSON reply into out.
// A 404 from the peer is reported as entity.ErrNotFound.
func (c httpClient) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := utils.ServiceToken(c.secret, time.Minute)
	if err != nil {
		return fmt.Errorf("sign service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("call %s: %w", path, entity.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}
