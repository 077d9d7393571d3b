package page

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"recoveryui/gui/data"
	"recoveryui/gui/gfx"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"
	"recoveryui/gui/widget"
	"recoveryui/hal"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uiXML = `<recovery>
	<details><startpage>main</startpage></details>
	<resources>
		<image name="logo" filename="logo"/>
		<string name="reboot_btn">Reboot</string>
	</resources>
	<variables>
		<variable name="tw_button_vibrate" value="0"/>
	</variables>
	<pages>
		<page name="splash">
			<fill color="#ff0000"><placement x="0" y="0" w="10" h="10"/></fill>
		</page>
		<page name="main">
			<background color="#101010"/>
			<object type="image">
				<image resource="logo"/>
				<placement x="0" y="100"/>
			</object>
			<object type="button">
				<placement x="0" y="0" w="100" h="50"/>
				<fill color="#00ff00"/>
				<action function="page">advanced</action>
			</object>
			<object type="button">
				<placement x="0" y="60" w="100" h="30"/>
				<fill color="#0000ff"/>
				<actions>
					<action function="set">tw_mode=%tw_button_vibrate%x</action>
					<action function="reboot">system</action>
				</actions>
			</object>
			<object type="widget"/>
		</page>
		<page name="advanced">
			<object type="console"><placement x="0" y="0" w="100" h="100"/></object>
			<action function="page">main<placement x="0" y="0" w="480" h="800"/></action>
		</page>
	</pages>
</recovery>`

type rig struct {
	ps       *PageSet
	env      *widget.Env
	external []string
}

func newPageRig(t *testing.T) *rig {
	t.Helper()
	res := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(res, "images"), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(res, "images", "logo.png"), buf.Bytes(), 0o644))

	loader := &resource.Loader{ScratchPath: filepath.Join(t.TempDir(), "x.bin"), ResDir: res, Log: zerolog.Nop()}
	canvas, err := gfx.NewCanvas(480, 800)
	require.NoError(t, err)
	r := &rig{}
	r.env = &widget.Env{
		Canvas:    canvas,
		Resources: resource.NewManager(loader, resource.DefaultOptions()),
		Data:      data.NewStore(),
		Log:       zerolog.Nop(),
	}
	r.ps = NewPageSet(r.env, widget.ActionFunc(func(fn, arg string) error {
		r.external = append(r.external, fn+":"+arg)
		return nil
	}))

	doc, err := theme.Parse([]byte(uiXML))
	require.NoError(t, err)
	require.NoError(t, r.ps.Load(doc.Root(), nil, "ui.xml"))
	return r
}

func TestLoadPicksStartPage(t *testing.T) {
	r := newPageRig(t)
	require.Len(t, r.ps.Pages(), 3)
	assert.Equal(t, "main", r.ps.Current().Name())
	assert.Len(t, r.ps.Current().Widgets(), 3)
	assert.Equal(t, "0", r.env.Data.GetValue("tw_button_vibrate"))
	assert.Equal(t, "Reboot", r.env.Resources.FindString("reboot_btn"))
}

func TestTickAndRender(t *testing.T) {
	r := newPageRig(t)
	assert.Equal(t, widget.FullRepaintNeeded, r.ps.Tick())
	require.NoError(t, r.ps.Render())
	assert.Equal(t, widget.NoChange, r.ps.Tick())

	img := r.env.Canvas.Image()
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, img.RGBAAt(0, 100))
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 255}, img.RGBAAt(400, 400))
}

func TestButtonChangesPage(t *testing.T) {
	r := newPageRig(t)
	require.NoError(t, r.ps.Render())

	assert.Equal(t, 1, r.ps.NotifyTouch(hal.TouchStart, 10, 10))
	assert.Equal(t, widget.FullRepaintNeeded, r.ps.Tick())
	require.NoError(t, r.ps.Render())
	assert.Equal(t, 1, r.ps.NotifyTouch(hal.TouchRelease, 10, 10))
	assert.Equal(t, "advanced", r.ps.Current().Name())
	assert.Equal(t, widget.FullRepaintNeeded, r.ps.Tick())
	assert.NotNil(t, r.ps.Console())

	require.NoError(t, r.ps.Render())
	assert.Equal(t, 1, r.ps.NotifyTouch(hal.TouchStart, 300, 300))
	assert.Equal(t, 1, r.ps.NotifyTouch(hal.TouchRelease, 300, 300))
	assert.Equal(t, "main", r.ps.Current().Name())
}

func TestDragOffButtonCancels(t *testing.T) {
	r := newPageRig(t)
	assert.Equal(t, 1, r.ps.NotifyTouch(hal.TouchStart, 10, 10))
	assert.Equal(t, 0, r.ps.NotifyTouch(hal.TouchDrag, 10, 75))
	assert.Equal(t, 0, r.ps.NotifyTouch(hal.TouchRelease, 10, 75))
	assert.Equal(t, "main", r.ps.Current().Name())
	assert.Empty(t, r.external)
}

func TestSetAndExternalActions(t *testing.T) {
	r := newPageRig(t)
	r.ps.NotifyTouch(hal.TouchStart, 10, 70)
	r.ps.NotifyTouch(hal.TouchRelease, 10, 70)
	assert.Equal(t, "0x", r.env.Data.GetValue("tw_mode"))
	assert.Equal(t, []string{"reboot:system"}, r.external)

	assert.Error(t, r.ps.Do("set", "novalue"))
	err := r.ps.ChangePage("nope")
	assert.Equal(t, uierr.KindLookup, uierr.KindOf(err))
}

func TestTouchOutsideEverything(t *testing.T) {
	r := newPageRig(t)
	assert.Equal(t, 0, r.ps.NotifyTouch(hal.TouchStart, 400, 700))
}

func TestLoadWithoutPages(t *testing.T) {
	loader := &resource.Loader{Log: zerolog.Nop()}
	env := &widget.Env{Resources: resource.NewManager(loader, resource.DefaultOptions()), Data: data.NewStore(), Log: zerolog.Nop()}
	ps := NewPageSet(env, nil)
	doc, err := theme.Parse([]byte(`<recovery><resources/></recovery>`))
	require.NoError(t, err)
	assert.ErrorIs(t, ps.Load(doc.Root(), nil, "ui.xml"), ErrNoPages)
	assert.Equal(t, widget.NoChange, ps.Tick())

	err = ps.Do("reboot", "")
	assert.Equal(t, uierr.KindUnsupported, uierr.KindOf(err))
}

func TestHiddenWidgetSettlesAfterRepaint(t *testing.T) {
	r := newPageRig(t)
	doc, err := theme.Parse([]byte(`<page name="cond">
		<object type="button">
			<condition var1="show" var2="1"/>
			<placement x="0" y="0" w="50" h="50"/>
			<fill color="#00ff00"/>
		</object>
	</page>`))
	require.NoError(t, err)
	r.env.Data.SetValue("show", "1")
	p := NewPage(doc.Root(), r.env)

	assert.Equal(t, widget.FullRepaintNeeded, p.Tick())
	require.NoError(t, p.Render())
	assert.Equal(t, widget.NoChange, p.Tick())
	assert.Equal(t, color.RGBA{G: 255, A: 255}, r.env.Canvas.Image().RGBAAt(5, 5))

	r.env.Data.SetValue("show", "0")
	assert.Equal(t, widget.FullRepaintNeeded, p.Tick())
	require.NoError(t, p.Render())
	assert.Equal(t, widget.NoChange, p.Tick())
	assert.Equal(t, widget.NoChange, p.Tick())
	assert.Equal(t, color.RGBA{A: 255}, r.env.Canvas.Image().RGBAAt(5, 5))
}
