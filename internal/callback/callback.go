// Package callback implements the Outbound Callback Collaborator:
// delivering a finished BatchResult to the orchestrator exactly once,
// fire-and-forget. No example repo in the retrieval pack imports a
// dedicated HTTP client library (resty, req, and similar never appear),
// so this stays on net/http by necessity — see DESIGN.md.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client posts BatchResults to the orchestrator's submit endpoint.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiHeaderName string
	apiKey        string
	logger        *zap.Logger
}

// New builds a callback Client. baseURL is the orchestrator's address
// (config.OrchestratorConfig.Address); apiHeaderName/apiKey are sent on
// every request so the orchestrator can authenticate the caller.
func New(baseURL, apiHeaderName, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		baseURL:       baseURL,
		apiHeaderName: apiHeaderName,
		apiKey:        apiKey,
		logger:        logger,
	}
}

// Deliver sends result to the orchestrator. A failure is logged and
// counted but never retried and never returned as a fatal error to the
// caller — the batch has already completed and the worker has no
// further use for the result once it has attempted delivery once.
func (c *Client) Deliver(ctx context.Context, result domain.BatchResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("callback: failed to marshal batch result",
			zap.String("submission_id", result.SubmissionID), zap.Error(err))
		metrics.CallbackFailures.Inc()
		return fmt.Errorf("callback: marshal failed: %w", err)
	}

	url := c.baseURL + "/api/evaluate/container-submit"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("callback: failed to build request", zap.Error(err))
		metrics.CallbackFailures.Inc()
		return fmt.Errorf("callback: request construction failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiHeaderName != "" {
		req.Header.Set(c.apiHeaderName, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("callback: delivery failed",
			zap.String("submission_id", result.SubmissionID), zap.Error(err))
		metrics.CallbackFailures.Inc()
		return fmt.Errorf("callback: delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Error("callback: orchestrator rejected result",
			zap.String("submission_id", result.SubmissionID), zap.Int("status", resp.StatusCode))
		metrics.CallbackFailures.Inc()
		return fmt.Errorf("callback: orchestrator responded with status %d", resp.StatusCode)
	}

	c.logger.Info("callback: result delivered", zap.String("submission_id", result.SubmissionID))
	return nil
}
