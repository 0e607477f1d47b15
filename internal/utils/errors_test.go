package utils

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestRequestErrorMessage(t *testing.T) {
	err := New(404, "not found")
	assert.Equal(t, "Code: 404, Message: not found", err.Error())

	wrapped := fmt.Errorf("delete: %w", err)
	re, ok := AsRequest(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, re.Code)
}

func TestErrorKinds(t *testing.T) {
	v := fmt.Errorf("upload: %w", Invalid("file", "too large"))
	n := &NetworkError{Op: "GET /api/images", Err: io.ErrUnexpectedEOF}

	assert.True(t, IsValidation(v))
	assert.False(t, IsNetwork(v))
	assert.True(t, IsNetwork(n))
	assert.True(t, errors.Is(n, io.ErrUnexpectedEOF))
	assert.Equal(t, "validation: file: too large", errors.Unwrap(v).Error())

	_, ok := AsRequest(n)
	assert.False(t, ok)
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("loud", "")
	require.Error(t, err)

	logger, err := NewLogger("debug", "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
