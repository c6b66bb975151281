package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvmatch/internal/config"
	"github.com/katalvlaran/lvmatch/internal/logging"
	"github.com/katalvlaran/lvmatch/matching"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logging.ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, logging.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("bogus"))
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(config.LogConfig{Level: "info", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	log.Atom.SetLevel(zapcore.DebugLevel)
	log.Debug("now visible")
	require.NoError(t, log.Close())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "now visible")
}

func TestNew_JSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	log.Info("solved", zap.Int64("total", 65))
	require.NoError(t, log.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "solved", entry["message"])
	assert.Equal(t, "INFO", entry["lvl"])
	assert.EqualValues(t, 65, entry["total"])
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lvmatch.log")
	var buf bytes.Buffer
	log, err := logging.New(config.LogConfig{
		Level:      "info",
		Format:     "console",
		File:       path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}, &buf)
	require.NoError(t, err)
	log.Warn("to both sinks")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"), "file sink writes JSON lines")
	assert.Contains(t, string(data), "to both sinks")
	assert.Contains(t, buf.String(), "to both sinks")
}

func TestHooks_TraceEngine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	res, err := matching.MaxWeight([][]int64{
		{3, 1, 2},
		{4, 2, 5},
		{5, 3, 1},
	}, logging.Hooks(zap.New(core))...)
	require.NoError(t, err)

	assert.Equal(t, res.Stats.Phases, logs.FilterMessage("phase").Len())
	assert.Equal(t, res.Stats.Relaxations, logs.FilterMessage("relax").Len())
	assert.Equal(t, 3, logs.FilterMessage("augment").Len())

	last := logs.FilterMessage("phase").All()
	fields := last[len(last)-1].ContextMap()
	assert.EqualValues(t, 3, fields["matched"])
}

func TestHooks_SilentAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	_, err := matching.MaxWeight([][]int64{{1, 2}, {2, 1}}, logging.Hooks(zap.New(core))...)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}
