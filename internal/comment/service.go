// Package comment forwards user feedback to the backend under the same
// requester-identity pattern as tickets.
package comment

import (
	"context"
	"log/slog"
	"strings"

	"domainstore/internal/identity"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/requestcontext"
)

// Client is the slice of the upstream API the comment service needs.
type Client interface {
	CreateComment(ctx context.Context, customerID, content string) error
}

// Service validates and submits feedback comments.
type Service struct {
	client Client
	logger *slog.Logger
}

// New constructs the comment service.
func New(client Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Create submits one comment. Fails fast without a network call when the
// identity is unusable or the content is empty.
func (s *Service) Create(ctx context.Context, user *identity.User, content string) error {
	if !user.Usable() {
		return dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return dErrors.New(dErrors.CodeBadRequest, "comment content is required")
	}

	if err := s.client.CreateComment(ctx, user.CustomerID(), content); err != nil {
		s.logger.WarnContext(ctx, "failed to submit comment",
			"request_id", requestcontext.RequestID(ctx),
			"customer_id", user.CustomerID(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to send comment")
	}
	return nil
}
