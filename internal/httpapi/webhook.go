package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// webhookSink delivers balance responses to the caller-supplied destination
// with a JSON POST. Delivery happens inside the engine's transaction
// boundary, so a non-2xx response or transport failure fails the whole
// balance_of call. An empty callback returns the nil sink, which skips
// delivery.
func (s *Server) webhookSink(ctx context.Context, callback string) types.BalanceSink {
	if callback == "" {
		return nil
	}
	return types.BalanceSinkFunc(func(responses []types.BalanceResponse) error {
		body, err := json.Marshal(map[string]any{"balances": responses})
		if err != nil {
			return fmt.Errorf("encode balance responses: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, callback, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build callback request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			s.metrics.Webhooks.WithLabelValues("error").Inc()
			return fmt.Errorf("deliver balances to %s: %w", callback, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			s.metrics.Webhooks.WithLabelValues("rejected").Inc()
			return fmt.Errorf("balance destination %s answered %d", callback, resp.StatusCode)
		}
		s.metrics.Webhooks.WithLabelValues("ok").Inc()
		return nil
	})
}
