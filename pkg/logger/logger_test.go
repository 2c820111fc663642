package logger

import (
	"testing"

	"github.com/example/goldshop/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	l, err := New(config.LogConfig{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNew_DebugConsole(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Encoding: "console", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Encoding: "xml"})
	assert.Error(t, err)
}
