package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

type httpSender struct {
	client   *http.Client
	endpoint string
	secret   string
	Log      *zap.Logger
}

// NewHTTPSender posts envelopes to {baseURL}/send.
func NewHTTPSender(baseURL, secret string, timeout time.Duration, log *zap.Logger) Sender {
	return &httpSender{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(baseURL, "/") + "/send",
		secret:   secret,
		Log:      log.With(zap.String("sender", "http")),
	}
}

func (s *httpSender) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := utils.ServiceToken(s.secret, time.Minute)
	if err != nil {
		return fmt.Errorf("sign service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()

	s.Log.Debug("Notification sent", zap.String("endpoint", s.endpoint), zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("post %s: unexpected status %d", s.endpoint, resp.StatusCode)
	}
	return nil
}

func (s *httpSender) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
