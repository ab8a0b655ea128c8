package dilog_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	di "github.com/sectrean/provider-kit"
	"github.com/sectrean/provider-kit/dilog"
)

func Test_Zap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := dilog.Zap(zap.New(core))

	sink.Debug("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
}

func Test_Slog(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	dilog.Slog(logger).Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func Test_Writer(t *testing.T) {
	var buf strings.Builder
	dilog.Writer(&buf).Debug("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func Test_SinkAsService(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	c := di.NewCollection()
	di.AddValue(c, dilog.Zap(zap.New(core)))

	p := c.BuildProvider()
	defer func() {
		require.NoError(t, p.Dispose())
	}()

	scope, err := p.CreateScope()
	require.NoError(t, err)
	require.NoError(t, scope.Dispose())

	assert.NotZero(t, logs.Len())
}
