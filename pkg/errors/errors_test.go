package errorsUtils_test

import (
	"errors"
	"testing"

	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapPathErr(t *testing.T) {
	base := errors.New("boom")

	wrapped := errorsUtils.WrapPathErr(base)

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "TestWrapPathErr")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestWrapPathErr_Nil(t *testing.T) {
	assert.NoError(t, errorsUtils.WrapPathErr(nil))
}
