package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "Basecall_1D", c.Analyses.Basecall)
	assert.Equal(t, "EventDetection_000", c.Analyses.Detected)
	assert.Equal(t, "ReSegmentBasecall_000", c.Analyses.Output)
	assert.Equal(t, "minknow_event_detect", c.Detector.Name)
	assert.NoError(t, c.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(`
db: reads.db
threads: 4
analyses:
  output: ReSegmentBasecall_001
strict_contiguity: true
detector:
  name: scrappie
  params:
    window_lengths: "3,6"
`))
	require.NoError(t, err)
	assert.Equal(t, "reads.db", c.DB)
	assert.Equal(t, 4, c.Threads)
	assert.True(t, c.StrictContiguity)
	assert.Equal(t, "Basecall_1D", c.Analyses.Basecall, "unset keys keep defaults")
	assert.Equal(t, "ReSegmentBasecall_001", c.Analyses.Output)
	assert.Equal(t, "scrappie", c.Detector.Name)
	assert.Equal(t, "3,6", c.Detector.Params["window_lengths"])
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("thread: 3\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Threads = -1
	assert.Error(t, c.Validate())

	c = Default()
	c.Analyses.Output = c.Analyses.Basecall
	assert.Error(t, c.Validate())

	c = Default()
	c.Analyses.Detected = ""
	assert.Error(t, c.Validate())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("RESEG_TEST_DB", "/data/run1.db")
	path := filepath.Join(t.TempDir(), "reseg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: ${RESEG_TEST_DB}\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/run1.db", c.DB)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
