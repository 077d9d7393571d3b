package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recoveryui/gui/resource"
	"recoveryui/gui/uierr"
	"recoveryui/hal"
	"recoveryui/internal/config"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUI = `<recovery>
	<details>
		<resolution width="120" height="160"/>
		<startpage>main</startpage>
	</details>
	<resources>
		<image name="logo" filename="logo"/>
		<string name="hello">Hello</string>
	</resources>
	<variables>
		<variable name="tw_button_vibrate" value="20"/>
	</variables>
	<pages>
		<page name="main">
			<background color="#000000"/>
			<object type="button">
				<placement x="0" y="0" w="60" h="40"/>
				<fill color="#00ff00"/>
				<action function="page">second</action>
			</object>
			<object type="button">
				<placement x="0" y="100" w="60" h="40"/>
				<fill color="#0000ff"/>
				<action function="quit"/>
			</object>
		</page>
		<page name="second">
			<background color="#ff0000"/>
			<object type="image">
				<image resource="logo"/>
				<placement x="100" y="140"/>
			</object>
			<object type="text">
				<font resource="builtin" color="#ffffff"/>
				<placement x="10" y="10"/>
				<text>{@hello} {@missing=fallback}</text>
			</object>
		</page>
	</pages>
</recovery>`

type testVibrator struct {
	pulses []time.Duration
}

func (v *testVibrator) Vibrate(d time.Duration) error {
	v.pulses = append(v.pulses, d)
	return nil
}

type testHAL struct {
	disp  hal.Backend
	touch chan hal.TouchEvent
	vib   *testVibrator
}

func newTestHAL(w, h int) *testHAL {
	host := hal.New(hal.HostConfig{Width: w, Height: h, Log: zerolog.Nop()})
	return &testHAL{disp: host.Display(), touch: make(chan hal.TouchEvent, 16), vib: &testVibrator{}}
}

func (h *testHAL) Display() hal.Backend   { return h.disp }
func (h *testHAL) Input() hal.Input       { return h }
func (h *testHAL) Vibrator() hal.Vibrator { return h.vib }
func (h *testHAL) Touch() hal.TouchPanel  { return h }

func (h *testHAL) Events() <-chan hal.TouchEvent { return h.touch }

func (h *testHAL) tap(x, y int) {
	h.touch <- hal.TouchEvent{State: hal.TouchStart, X: x, Y: y}
	h.touch <- hal.TouchEvent{State: hal.TouchRelease, X: x, Y: y}
}

func logoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			img.SetNRGBA(i, j, color.NRGBA{R: 255, G: 255, B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeThemeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui.xml"), []byte(testUI), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "logo.png"), logoPNG(t), 0o644))
	return dir
}

func testConfig(t *testing.T, themePath string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Theme = themePath
	cfg.Scratch.Path = filepath.Join(t.TempDir(), "extract.bin")
	cfg.Scratch.FontTmpDir = t.TempDir()
	cfg.Display.Width = 120
	cfg.Display.Height = 160
	return &cfg
}

func pixel(t *testing.T, a *App, x, y int) (uint8, uint8, uint8) {
	t.Helper()
	fb := a.fb
	off := y*fb.StrideBytes() + x*fb.Format().BytesPerPixel()
	return hal.GetPixel(fb.Format(), fb.Buffer()[off:])
}

func TestAppLoadsDirectoryThemeAndPresents(t *testing.T) {
	h := newTestHAL(120, 160)
	a, err := New(testConfig(t, writeThemeDir(t)), zerolog.Nop(), h)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Step())
	assert.Equal(t, uint64(1), a.Frames())
	assert.Equal(t, "main", a.Pages().Current().Name())

	r, g, b := pixel(t, a, 10, 10)
	assert.Less(t, r, uint8(10))
	assert.Greater(t, g, uint8(200))
	assert.Less(t, b, uint8(10))

	r, g, b = pixel(t, a, 100, 60)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	require.NoError(t, a.Step())
	assert.Equal(t, uint64(1), a.Frames(), "idle tick must not present")

	counts := a.Resources().Counts()
	assert.Equal(t, 1, counts[resource.KindImage])
	assert.Equal(t, 1, counts[resource.KindFont])
}

func TestAppTouchChangesPageAndVibrates(t *testing.T) {
	h := newTestHAL(120, 160)
	a, err := New(testConfig(t, writeThemeDir(t)), zerolog.Nop(), h)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Step())

	h.tap(20, 20)
	require.NoError(t, a.Step())
	assert.Equal(t, "second", a.Pages().Current().Name())
	assert.Equal(t, []time.Duration{20 * time.Millisecond}, h.vib.pulses)

	require.NoError(t, a.Step())
	r, g, b := pixel(t, a, 60, 100)
	assert.Greater(t, r, uint8(200))
	assert.Less(t, g, uint8(10))
	assert.Less(t, b, uint8(10))

	r, g, b = pixel(t, a, 105, 145)
	assert.Greater(t, r, uint8(200))
	assert.Greater(t, g, uint8(200))
	assert.Less(t, b, uint8(10))

	entry, ok := a.Resources().String("missing")
	require.True(t, ok)
	assert.Equal(t, "fallback", entry.Value)
	assert.Equal(t, resource.SourceDefault, entry.Source)
}

func TestAppQuitAction(t *testing.T) {
	h := newTestHAL(120, 160)
	a, err := New(testConfig(t, writeThemeDir(t)), zerolog.Nop(), h)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Step())

	h.tap(20, 120)
	assert.ErrorIs(t, a.Step(), ErrQuit)
	assert.ErrorIs(t, a.Step(), ErrQuit)
}

func TestAppLoadsZipTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range map[string][]byte{
		"ui.xml":          []byte(testUI),
		"images/logo.png": logoPNG(t),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	cfg := testConfig(t, path)
	a, err := New(cfg, zerolog.Nop(), newTestHAL(120, 160))
	require.NoError(t, err)
	defer a.Close()

	_, ok := a.Resources().FindImage("logo")
	assert.True(t, ok)
	_, err = os.Stat(cfg.Scratch.Path)
	assert.True(t, os.IsNotExist(err), "scratch file must be removed after load")
}

func TestAppLoadsBareXMLWithResDir(t *testing.T) {
	dir := writeThemeDir(t)
	cfg := testConfig(t, filepath.Join(dir, "ui.xml"))
	cfg.ResDir = dir

	a, err := New(cfg, zerolog.Nop(), newTestHAL(120, 160))
	require.NoError(t, err)
	defer a.Close()

	_, ok := a.Resources().FindImage("logo")
	assert.True(t, ok)
}

func TestAppScalesToDisplay(t *testing.T) {
	cfg := testConfig(t, writeThemeDir(t))
	cfg.Display.Width, cfg.Display.Height = 240, 320

	a, err := New(cfg, zerolog.Nop(), newTestHAL(240, 320))
	require.NoError(t, err)
	defer a.Close()

	img, ok := a.Resources().FindImage("logo")
	require.True(t, ok)
	assert.Equal(t, 20, img.Width())
	assert.Equal(t, 20, img.Height())
}

func TestAppMissingThemeFile(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	_, err := New(cfg, zerolog.Nop(), newTestHAL(120, 160))
	require.Error(t, err)
	assert.Equal(t, uierr.KindConfig, uierr.KindOf(err))
}

func TestAppExternalActions(t *testing.T) {
	h := newTestHAL(120, 160)
	a, err := New(testConfig(t, writeThemeDir(t)), zerolog.Nop(), h)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Pages().Do("vibrate", "35"))
	assert.Equal(t, []time.Duration{35 * time.Millisecond}, h.vib.pulses)
	assert.Error(t, a.Pages().Do("vibrate", "soon"))

	require.NoError(t, a.Pages().Do("print", "hello"))
	require.NoError(t, a.Pages().Do("blank", "0"))

	err = a.Pages().Do("reboot", "system")
	require.Error(t, err)
	assert.Equal(t, uierr.KindUnsupported, uierr.KindOf(err))
}

func TestShowPanicDrawsText(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(160, 120, hal.PixelFormatRGB565)
	showPanic(fb, "boom", []byte("goroutine 1 [running]:\nmain.main()\n"))

	white, dark := 0, 0
	buf := fb.Buffer()
	for off := 0; off+1 < len(buf); off += 2 {
		r, g, b := hal.GetPixel(fb.Format(), buf[off:])
		if r > 200 && g > 200 && b > 200 {
			white++
		} else {
			dark++
		}
	}
	assert.Greater(t, white, dark)
	assert.Positive(t, dark)
}

func TestTakeRunes(t *testing.T) {
	p, rest := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", rest)

	p, rest = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, rest)
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	cfg := testConfig(t, writeThemeDir(t))
	cfg.Display.Backend = "headless"
	cfg.Display.Hz = 1000
	cfg.Display.Ticks = 3

	require.NoError(t, Run(context.Background(), cfg, zerolog.Nop()))
}

type exitCountingBackend struct {
	hal.Backend
	exits int
}

func (b *exitCountingBackend) Exit() error {
	b.exits++
	return b.Backend.Exit()
}

func TestAppNewReleasesDisplayOnFailure(t *testing.T) {
	cases := map[string]func(t *testing.T) string{
		"missing theme file": func(t *testing.T) string { return t.TempDir() },
		"no root element": func(t *testing.T) string {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "ui.xml"), []byte("not a theme"), 0o644))
			return dir
		},
		"no pages": func(t *testing.T) string {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "ui.xml"), []byte("<recovery/>"), 0o644))
			return dir
		},
	}
	for name, themeDir := range cases {
		t.Run(name, func(t *testing.T) {
			h := newTestHAL(120, 160)
			disp := &exitCountingBackend{Backend: h.disp}
			h.disp = disp

			a, err := New(testConfig(t, themeDir(t)), zerolog.Nop(), h)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Equal(t, 1, disp.exits)
		})
	}
}

func TestAppCloseExitsDisplayOnce(t *testing.T) {
	h := newTestHAL(120, 160)
	disp := &exitCountingBackend{Backend: h.disp}
	h.disp = disp

	a, err := New(testConfig(t, writeThemeDir(t)), zerolog.Nop(), h)
	require.NoError(t, err)
	assert.Equal(t, 0, disp.exits)
	require.NoError(t, a.Close())
	assert.Equal(t, 1, disp.exits)
}
