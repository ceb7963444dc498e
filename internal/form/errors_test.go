package form

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := newError(KindTransport, MsgGenerateError, cause)

	assert.Equal(t, MsgGenerateError+": connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, MsgNoResult, newError(KindValidation, MsgNoResult, nil).Error())
}

func TestKindHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", newError(KindApplication, "وجه غير واضح", nil))

	assert.True(t, IsApplication(wrapped))
	assert.False(t, IsTransport(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.Equal(t, "وجه غير واضح", MessageOf(wrapped))

	plain := errors.New("plain")
	assert.False(t, IsApplication(plain))
	assert.Equal(t, MsgGenerateError, MessageOf(plain))
}
