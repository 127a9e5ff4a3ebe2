// Package upstream is the typed HTTP client for the remote catalog, ticket,
// and comment service. All calls go through capped exponential-backoff
// retries with context propagation; client errors (4xx) are not retried.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	catalogmodels "domainstore/internal/catalog/models"
	ticketmodels "domainstore/internal/ticket/models"
	"domainstore/pkg/platform/sentinel"
)

// Scope selects which catalog listing the backend serves.
type Scope string

const (
	ScopePublic Scope = "public"
	ScopeAll    Scope = "all"
)

// Client talks to the backend service. Responses arrive in a {"data": ...}
// envelope.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func (e *statusError) clientError() bool {
	return e.code >= 400 && e.code < 500
}

// FetchCatalog retrieves the domain listing for the given scope.
func (c *Client) FetchCatalog(ctx context.Context, scope Scope) ([]catalogmodels.WireDomain, error) {
	var out []catalogmodels.WireDomain
	if err := c.call(ctx, http.MethodGet, "/domains/"+string(scope), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TicketsByCustomerAndDomains returns the requester's tickets touching any of
// the given domain names.
func (c *Client) TicketsByCustomerAndDomains(ctx context.Context, customerID string, names []string) ([]ticketmodels.Record, error) {
	body := map[string]any{
		"customer_id": customerID,
		"domains":     names,
	}
	var out []ticketmodels.Record
	if err := c.call(ctx, http.MethodPost, "/tickets/customer-domains", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTicket submits a new purchase request.
func (c *Client) CreateTicket(ctx context.Context, req ticketmodels.CreateRequest) error {
	return c.call(ctx, http.MethodPost, "/tickets", req, nil)
}

// CreateComment submits user feedback under the same requester identity.
func (c *Client) CreateComment(ctx context.Context, customerID, content string) error {
	body := map[string]any{
		"customer_id": customerID,
		"content":     content,
	}
	return c.call(ctx, http.MethodPost, "/comments", body, nil)
}

// call performs one JSON round trip with retries. out, when non-nil, receives
// the decoded "data" field of the response envelope.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	err := retry.Do(
		func() error {
			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")

			start := time.Now()
			resp, err := c.http.Do(req)
			if err != nil {
				c.logger.Warn("upstream request failed, will retry",
					"method", method, "path", path,
					"duration_ms", time.Since(start).Milliseconds(),
					"error", err)
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return &statusError{code: resp.StatusCode}
			}
			if out == nil {
				return nil
			}

			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode envelope: %w", err))
			}
			if len(envelope.Data) == 0 {
				return nil
			}
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode data: %w", err))
			}
			return nil
		},
		retry.Attempts(4),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.MaxJitter(time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying upstream call", "method", method, "path", path, "attempt", n, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			if se, ok := err.(*statusError); ok {
				return !se.clientError()
			}
			return true
		}),
	)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, sentinel.ErrUnavailable, err)
	}
	return nil
}
