package services

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownService_Name(t *testing.T) {
	assert.Equal(t, "markdown", NewMarkdownService().Name())
}

func TestMarkdownService_Render(t *testing.T) {
	service := NewMarkdownService()

	// Test uninitialized service
	_, err := service.Render("# Test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	require.NoError(t, service.Initialize())
	require.NoError(t, service.Configure("notty", 60))

	_, err = service.Render("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	result, err := service.Render("# Hello World\n\nSome **bold** text.")
	require.NoError(t, err)
	plain := ansi.Strip(result)
	assert.Contains(t, plain, "Hello World")
	assert.Contains(t, plain, "bold")
	assert.NotRegexp(t, `^\n`, result)
}

func TestMarkdownService_Configure(t *testing.T) {
	service := NewMarkdownService()
	require.NoError(t, service.Initialize())

	assert.Error(t, service.Configure("dark", 0))

	require.NoError(t, service.Configure("", 40))
	assert.Equal(t, "auto", service.style)
	assert.Equal(t, 40, service.width)

	require.NoError(t, service.Configure("notty", 40))
	_, err := service.Render("text")
	require.NoError(t, err)
	assert.NotNil(t, service.renderer)

	// Same settings keep the cached renderer
	cached := service.renderer
	require.NoError(t, service.Configure("notty", 40))
	assert.Same(t, cached, service.renderer)

	require.NoError(t, service.Configure("notty", 50))
	assert.Nil(t, service.renderer)
}

func TestResolveGlamourStyle(t *testing.T) {
	assert.Equal(t, "dark", ResolveGlamourStyle("dark"))
	assert.Equal(t, "notty", ResolveGlamourStyle("notty"))
	assert.Contains(t, []string{"notty", "dark", "light"}, ResolveGlamourStyle("auto"))
	assert.Contains(t, []string{"notty", "dark", "light"}, ResolveGlamourStyle(""))
}
