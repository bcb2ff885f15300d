package log_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/log"
)

func TestToSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, log.ToSlogLevel("DEBUG"))
	require.Equal(t, slog.LevelInfo, log.ToSlogLevel(log.Info))
	require.Equal(t, slog.LevelWarn, log.ToSlogLevel(log.Warn))
	require.Equal(t, slog.LevelError, log.ToSlogLevel("anything else"))
}

func TestMustCreateLoggerWritesFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "statteam.log")
	closer := log.MustCreateLogger(path, log.Warn)

	slog.Info("hidden below warn")
	slog.Warn("Failed to remember store", log.ErrAttr(errors.New("disk full")))
	closer()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "disk full")
	require.NotContains(t, string(content), "hidden below warn")
}
