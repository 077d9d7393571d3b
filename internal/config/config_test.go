package config

import (
	"os"
	"path/filepath"
	"testing"

	"recoveryui/gui/uierr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("theme: /res/theme.zip\n"))
	require.NoError(t, err)
	assert.Equal(t, "/res/theme.zip", cfg.Theme)
	assert.Equal(t, "ui.xml", cfg.ThemeFile)
	assert.Equal(t, "/tmp/extract.bin", cfg.Scratch.Path)
	assert.Equal(t, "window", cfg.Display.Backend)
	assert.Equal(t, 480, cfg.Display.Width)
	assert.True(t, cfg.Strings.TrackMissesOrDefault())
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
theme: /res
res_dir: /res
scratch:
  path: /cache/extract.bin
  font_tmp_dir: /cache
display:
  backend: mmap
  device: /dev/ashmem_canvas
  brightness_path: /sys/class/leds/lcd-backlight/brightness
  max_brightness: 255
  theme_width: 1080
  theme_height: 1920
log:
  level: debug
  format: json
strings:
  track_misses: false
vibrator_path: /sys/class/timed_output/vibrator/enable
variables:
  tw_button_vibrate: "40"
`))
	require.NoError(t, err)
	assert.Equal(t, "mmap", cfg.Display.Backend)
	assert.Equal(t, 1080, cfg.Display.ThemeWidth)
	assert.False(t, cfg.Strings.TrackMissesOrDefault())
	assert.Equal(t, "40", cfg.Variables["tw_button_vibrate"])
}

func TestValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing theme":   "display: {backend: window}\n",
		"bad backend":     "theme: x\ndisplay: {backend: drm}\n",
		"device required": "theme: x\ndisplay: {backend: fbdev}\n",
		"bad level":       "theme: x\nlog: {level: loud}\n",
		"negative width":  "theme: x\ndisplay: {width: -1}\n",
		"malformed yaml":  "theme: [\n",
		"empty scratch":   "theme: x\nscratch: {path: \"\"}\n",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
		assert.Equal(t, uierr.KindConfig, uierr.KindOf(err), name)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "recoveryui.yaml")
	require.NoError(t, os.WriteFile(p, []byte("theme: /res\n"), 0o644))
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/res", cfg.Theme)

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
