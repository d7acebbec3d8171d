package services

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboardService_Name(t *testing.T) {
	assert.Equal(t, "clipboard", NewClipboardService().Name())
}

func TestClipboardService_EmptyText(t *testing.T) {
	service := NewClipboardService()
	require.NoError(t, service.Initialize())

	err := service.Copy("  \n ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to copy")
}

func TestClipboardService_UnavailableOnLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("clipboard is only disabled on linux builds")
	}

	service := NewClipboardService()
	require.NoError(t, service.Initialize())
	assert.False(t, service.Available())

	err := service.Copy("response text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}
