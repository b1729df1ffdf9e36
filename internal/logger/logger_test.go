package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, log.WarnLevel, ParseLevel("warning"))
	require.Equal(t, log.ErrorLevel, ParseLevel("error"))
	require.Equal(t, log.InfoLevel, ParseLevel(""))
}

func TestInitCreatesLogDir(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(Config{Level: "debug", Dir: dir}))
	Info("booted", "port", "8080")

	_, err := os.Stat(filepath.Join(dir, "showtimes.log"))
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, Logger.GetLevel())
}
