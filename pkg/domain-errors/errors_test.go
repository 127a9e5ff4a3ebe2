package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := New(CodeNotFound, "missing")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("walks the wrapped chain", func(t *testing.T) {
		inner := New(CodeUnavailable, "upstream down")
		outer := Wrap(inner, CodeInternal, "refresh failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeUnavailable))
	})

	t.Run("sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("context: %w", New(CodeBadRequest, "nope"))
		assert.True(t, HasCode(err, CodeBadRequest))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestCodeOfAndMessageOf(t *testing.T) {
	err := Wrap(New(CodeUnavailable, "inner"), CodeBadRequest, "outer")
	assert.Equal(t, CodeBadRequest, CodeOf(err))
	assert.Equal(t, "outer", MessageOf(err))

	plain := errors.New("boom")
	assert.Equal(t, CodeInternal, CodeOf(plain))
	assert.Equal(t, "internal error", MessageOf(plain))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:          http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeConflict:            http.StatusConflict,
		CodeIdentityUnavailable: http.StatusUnauthorized,
		CodeUnavailable:         http.StatusServiceUnavailable,
		CodeInternal:            http.StatusInternalServerError,
		Code("mystery"):         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}

func TestErrorFormatting(t *testing.T) {
	err := Wrap(errors.New("dial tcp: refused"), CodeUnavailable, "failed to fetch domains")
	assert.EqualError(t, err, "unavailable: failed to fetch domains: dial tcp: refused")
	assert.EqualError(t, New(CodeNotFound, "missing"), "not_found: missing")

	var de *Error
	assert.True(t, errors.As(err, &de))
	assert.ErrorContains(t, de.Unwrap(), "refused")
}
