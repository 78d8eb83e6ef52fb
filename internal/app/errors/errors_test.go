package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New("something broke")
	assert.Equal(t, "something broke", err.Error())

	wrapped := Wrap(stderrors.New("root cause"), "context")
	assert.Equal(t, "context: root cause", wrapped.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestAttachMatchesSentinel(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Attach(ErrRemoteService, cause)

	assert.True(t, stderrors.Is(err, ErrRemoteService))
	assert.False(t, stderrors.Is(err, ErrDecode))
	assert.True(t, stderrors.Is(err, cause))
}

func TestAttachNilCauseReturnsSentinel(t *testing.T) {
	err := Attach(ErrDecode, nil)
	assert.True(t, stderrors.Is(err, ErrDecode))
}

func TestAttachfKeepsContextAndChain(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := Attachf(ErrDecode, cause, "decoding %s", "memo.m4a")

	assert.True(t, stderrors.Is(err, ErrDecode))
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "decoding memo.m4a")
}

func TestIsUsesMessageEquality(t *testing.T) {
	assert.True(t, stderrors.Is(New("same text"), New("same text")))
	assert.False(t, stderrors.Is(New("one"), New("other")))
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, "name is required", RequiredField("name").Error())
	assert.Equal(t, "speed is invalid: must be positive", InvalidField("speed", "must be positive").Error())
}
