package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("mde must be non-zero")
	wrapped := Wrap(base, "sample size estimate failed")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "sample size estimate failed: mde must be non-zero", wrapped.Error())
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "scenario %s", "reject")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "scenario reject: boom", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
