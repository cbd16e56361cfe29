package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tmaxmax/go-sse"

	"github.com/sproutlab/sprout/pkg/events"
)

// Subscribe streams daemon events until ctx is done or the daemon closes the
// connection. The returned channel is closed when the stream ends.
func (c *Client) Subscribe(ctx context.Context) (<-chan events.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("got %d subscribing to events", resp.StatusCode)
	}

	ch := make(chan events.Event)
	go func() {
		defer close(ch)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logrus.Debugf("failed to close event stream: %v", err)
			}
		}()

		for e, err := range sse.Read(resp.Body, nil) {
			if err != nil {
				if ctx.Err() == nil {
					logrus.Warnf("event stream ended: %v", err)
				}
				return
			}

			// Comment-only blocks carry no payload.
			if e.Data == "" {
				continue
			}

			ev := events.Event{Name: e.Type, Data: json.RawMessage(e.Data)}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
