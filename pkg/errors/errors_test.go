package errors_test

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrConfigLoad, "could not read config")
	assert.Equal(t, "[CONFIG_LOAD] could not read config", err.Error())
	assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrModuleNotFound, "module %q not found", "hooks")
	assert.Equal(t, `[MODULE_NOT_FOUND] module "hooks" not found`, err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := errors.Wrap(inner, errors.ErrPathPermission, "install dir not writable")
	require.NotNil(t, err)

	assert.Equal(t, "[PATH_PERMISSION] install dir not writable: permission denied", err.Error())
	assert.Equal(t, inner, err.Unwrap())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "ignored"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrOpCommand, "command failed")

	assert.True(t, errors.IsErrorCode(err, errors.ErrOpCommand))
	assert.False(t, errors.IsErrorCode(err, errors.ErrOpCopy))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrOpCommand))
}

func TestGetErrorCodeUnknown(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrOpCopy, "copy failed").
		WithDetail("source", "/tmp/a").
		WithDetail("target", "/tmp/b")

	assert.Equal(t, "/tmp/a", err.Details["source"])
	assert.Equal(t, "/tmp/b", err.Details["target"])
}
