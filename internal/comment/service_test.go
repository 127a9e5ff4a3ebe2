package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainstore/internal/identity"
	dErrors "domainstore/pkg/domain-errors"
	"domainstore/pkg/testutil"
)

type fakeClient struct {
	err        error
	customerID string
	content    string
	calls      int
}

func (f *fakeClient) CreateComment(ctx context.Context, customerID, content string) error {
	f.calls++
	f.customerID = customerID
	f.content = content
	return f.err
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	user := &identity.User{ID: "42", Username: "alice"}

	t.Run("forwards trimmed content under the requester identity", func(t *testing.T) {
		client := &fakeClient{}
		svc := New(client, testutil.DiscardLogger())

		require.NoError(t, svc.Create(ctx, user, "  great catalog  "))
		assert.Equal(t, "alice", client.customerID)
		assert.Equal(t, "great catalog", client.content)
	})

	t.Run("rejects a missing identity without calling upstream", func(t *testing.T) {
		client := &fakeClient{}
		svc := New(client, testutil.DiscardLogger())

		err := svc.Create(ctx, nil, "hello")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeIdentityUnavailable))
		assert.Zero(t, client.calls)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		client := &fakeClient{}
		svc := New(client, testutil.DiscardLogger())

		err := svc.Create(ctx, user, "   ")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		assert.Zero(t, client.calls)
	})

	t.Run("wraps upstream failures as retryable", func(t *testing.T) {
		client := &fakeClient{err: errors.New("boom")}
		svc := New(client, testutil.DiscardLogger())

		err := svc.Create(ctx, user, "hello")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
